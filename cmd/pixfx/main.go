package main

import (
	"fmt"
	"os"

	"github.com/Fepozopo/pixfx/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pixfx: %v\n", err)
		os.Exit(1)
	}
}
