package cli

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// FramesDigest returns the xxHash64 of the concatenated frame buffers as 16
// hex chars. Two hosts that produce the same pixels print the same digest.
func FramesDigest(frames [][]byte) string {
	h := xxhash.New()
	for _, f := range frames {
		_, _ = h.Write(f)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
