package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/pixfx/pkg/pixfx"
)

// EffectHelp produces a help entry from a pixfx.CommandSpec.
func EffectHelp(c pixfx.CommandSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d  %-11s %s", int(c.Effect), c.Name, c.Description)
	if len(c.Args) == 0 {
		return sb.String()
	}
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "\n   %-11s %s (%s, %s)", "", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
	}
	return sb.String()
}

func newEffectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "effects",
		Short: "List available effects and their parameters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, c := range pixfx.Commands {
				fmt.Fprintln(out, EffectHelp(c))
			}
		},
	}
}
