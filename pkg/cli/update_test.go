package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releasesJSON = `[
  {"tag_name": "v0.3.0-rc1", "prerelease": true, "assets": []},
  {"tag_name": "v0.2.0", "html_url": "https://example.invalid/v0.2.0", "assets": [
    {"name": "pixfx_windows_amd64.zip", "browser_download_url": "https://example.invalid/win"},
    {"name": "pixfx_linux_amd64.tar.gz", "browser_download_url": "https://example.invalid/linux"}
  ]},
  {"tag_name": "draft", "name": "v9.9.9", "draft": true},
  {"tag_name": "release-0.1.5", "assets": []},
  {"tag_name": "nightly"}
]`

func withReleaseServer(t *testing.T, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/"+updateRepo+"/releases" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	old := githubAPI
	githubAPI = srv.URL
	t.Cleanup(func() { githubAPI = old })
}

func TestDetectLatestPicksHighestStable(t *testing.T) {
	withReleaseServer(t, http.StatusOK, releasesJSON)

	rel, found, err := detectLatest(http.DefaultClient, updateRepo, "linux", "amd64")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "0.2.0", rel.Version.String())
	assert.Equal(t, "https://example.invalid/linux", rel.AssetURL)

	rel, _, err = detectLatest(http.DefaultClient, updateRepo, "darwin", "arm64")
	require.NoError(t, err)
	assert.Empty(t, rel.AssetURL)
}

func TestDetectLatestNoReleases(t *testing.T) {
	withReleaseServer(t, http.StatusOK, `[]`)
	rel, found, err := detectLatest(http.DefaultClient, updateRepo, "linux", "amd64")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rel)
}

func TestDetectLatestHTTPError(t *testing.T) {
	withReleaseServer(t, http.StatusInternalServerError, "boom")
	_, _, err := detectLatest(http.DefaultClient, updateRepo, "linux", "amd64")
	assert.ErrorContains(t, err, "status 500")
}

func TestCheckForUpdatesCheckOnly(t *testing.T) {
	withReleaseServer(t, http.StatusOK, releasesJSON)
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "0.1.0"
	var out bytes.Buffer
	require.NoError(t, checkForUpdates(strings.NewReader(""), &out, true, false))
	assert.Contains(t, out.String(), "Latest version: 0.2.0")
	assert.NotContains(t, out.String(), "Updated")

	Version = "v0.2.0"
	out.Reset()
	require.NoError(t, checkForUpdates(strings.NewReader(""), &out, false, false))
	assert.Contains(t, out.String(), "already running the latest version")
}

func TestCheckForUpdatesDeclined(t *testing.T) {
	withReleaseServer(t, http.StatusOK, releasesJSON)
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "0.1.0"

	var out bytes.Buffer
	require.NoError(t, checkForUpdates(strings.NewReader("n\n"), &out, false, false))
	s := out.String()
	if strings.Contains(s, "no download for this platform") {
		return
	}
	assert.Contains(t, s, "Update cancelled.")
}

func TestCheckForUpdatesPromptReadError(t *testing.T) {
	body := fmt.Sprintf(`[{"tag_name": "v0.2.0", "assets": [
    {"name": "pixfx_%s_%s.tar.gz", "browser_download_url": "https://example.invalid/bin"}
  ]}]`, runtime.GOOS, runtime.GOARCH)
	withReleaseServer(t, http.StatusOK, body)
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "0.1.0"

	readErr := errors.New("terminal closed")
	var out bytes.Buffer
	err := checkForUpdates(iotest.ErrReader(readErr), &out, false, false)
	require.ErrorIs(t, err, readErr)
	assert.Contains(t, out.String(), "Update to 0.2.0 now?")
	assert.NotContains(t, out.String(), "Update cancelled.")
}
