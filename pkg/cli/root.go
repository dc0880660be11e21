// Package cli hosts the pixfx filters behind a command line: it decodes image
// files into RGBA buffers, hands them to package pixfx and encodes the result.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the current release, overridden at build time with
// -ldflags "-X github.com/Fepozopo/pixfx/pkg/cli.Version=...".
var Version = "0.1.0"

// app carries state shared by subcommands once flags are parsed.
type app struct {
	envFile string
	verbose bool
	cfg     Config
	log     *zap.Logger
}

// NewRootCmd builds the pixfx command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "pixfx",
		Short: "Apply grayscale, sepia, brightness or box blur to images",
		Long: `pixfx applies one in-place pixel filter to an RGBA image or to every
frame of an animated GIF.

Defaults can be set in a .env file or the environment:
  PIXFX_EFFECT, PIXFX_PARAM, PIXFX_WORKERS, PIXFX_JPEG_QUALITY, PIXFX_DEBUG`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			log, err := newLogger(a.verbose || cfg.Debug)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVar(&a.envFile, "env", ".env", "dotenv file with defaults")
	root.SetVersionTemplate(fmt.Sprintf(
		"pixfx %s (%s/%s, %s)\n",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))

	root.AddCommand(newApplyCmd(a), newEffectsCmd(), newUpdateCmd())
	return root
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
