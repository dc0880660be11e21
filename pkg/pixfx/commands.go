// Registry of the effects Process understands, with the textual argument
// metadata hosts need for help output and argument parsing.

package pixfx

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgSpec is the scalar parameter an effect takes. ParseParam converts the
// string form according to Type.
type ArgSpec struct {
	Name        string
	Type        string // "int" for the blur radius, "float" for the brightness factor
	Required    bool
	Default     string // used when the argument is omitted
	Description string
}

// CommandSpec defines a single effect and its expected arguments.
type CommandSpec struct {
	Name        string
	Effect      Effect
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands lists every effect in selector order.
// Keep this synchronized with Process.
var Commands = []CommandSpec{
	{
		Name:        "grayscale",
		Effect:      EffectGrayscale,
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Set R, G and B to the luminance 0.299R+0.587G+0.114B.",
	},
	{
		Name:        "sepia",
		Effect:      EffectSepia,
		Args:        []ArgSpec{},
		Usage:       "sepia",
		Description: "Classic sepia tone matrix, clamped to [0,255].",
	},
	{
		Name:        "brightness",
		Effect:      EffectBrightness,
		Args:        []ArgSpec{{"factor", "float", false, "1.0", "multiplier for R, G and B"}},
		Usage:       "brightness [factor]",
		Description: "Scale colour channels by a factor; alpha is kept.",
	},
	{
		Name:        "blur",
		Effect:      EffectBlur,
		Args:        []ArgSpec{{"radius", "int", false, "1", "box radius in pixels"}},
		Usage:       "blur [radius]",
		Description: "Box blur over a (2r+1)x(2r+1) window, alpha included.",
	},
}

// LookupCommand returns the command registered under name (case-insensitive).
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return CommandSpec{}, false
}

// ParseEffect accepts a registered effect name or its numeric selector.
// Numeric selectors outside the registry are returned as-is with no error,
// matching the permissive dispatch of Process.
func ParseEffect(s string) (Effect, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty effect")
	}
	if c, ok := LookupCommand(s); ok {
		return c.Effect, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown effect %q", s)
	}
	return Effect(n), nil
}

// ParseParam converts the textual arguments of the named command into the
// scalar Process expects, falling back to the registered default.
func ParseParam(name string, args []string) (float64, error) {
	c, ok := LookupCommand(name)
	if !ok {
		return 0, fmt.Errorf("unknown effect %q", name)
	}
	if len(args) > len(c.Args) {
		if len(c.Args) == 0 {
			return 0, fmt.Errorf("%s takes no args", c.Name)
		}
		return 0, fmt.Errorf("%s takes at most %d arg(s): %s", c.Name, len(c.Args), c.Usage)
	}
	if len(c.Args) == 0 {
		return 0, nil
	}
	arg := c.Args[0]
	raw := arg.Default
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		raw = strings.TrimSpace(args[0])
	}
	switch arg.Type {
	case "int":
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", arg.Name, err)
		}
		return float64(v), nil
	default:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", arg.Name, err)
		}
		return v, nil
	}
}

// ApplyCommand applies the named effect with textual arguments, e.g.
// ApplyCommand(pix, w, h, "blur", []string{"2"}).
func ApplyCommand(pix []byte, width, height int, name string, args []string) error {
	c, ok := LookupCommand(name)
	if !ok {
		return fmt.Errorf("unknown effect %q", name)
	}
	param, err := ParseParam(c.Name, args)
	if err != nil {
		return err
	}
	if err := Process(pix, width, height, c.Effect, param); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}
