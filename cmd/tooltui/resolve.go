package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tooltui/internal/geometry"
)

var resolveOpts struct {
	trigger     string
	overlay     string
	placement   string
	offset      int
	viewport    string
	disableFlip bool
	output      string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Compute a popup position",
	Long: `Compute where a popup is drawn for a trigger rectangle, an overlay size
and a requested placement, including the flip to the opposite side when the
overlay would leave the viewport.

Rectangles are in cells (or any unit, as long as it is used consistently).`,
	Example: `  # Overlay 80x30 above a 100x40 trigger at (10,10) flips below it
  tooltui resolve --trigger 10,10,100,40 --overlay 80,30 --placement top --viewport 1024x600

  # Keep the requested placement even when it overflows
  tooltui resolve --trigger 10,10,100,40 --overlay 80,30 --disable-flip -o json`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveOpts.trigger, "trigger", "",
		"Trigger rectangle as x,y,width,height")
	resolveCmd.Flags().StringVar(&resolveOpts.overlay, "overlay", "",
		"Overlay size as width,height")
	resolveCmd.Flags().StringVarP(&resolveOpts.placement, "placement", "p", "top",
		"Requested placement (top, right, bottom, left)")
	resolveCmd.Flags().IntVar(&resolveOpts.offset, "offset", 8,
		"Gap between trigger and overlay")
	resolveCmd.Flags().StringVar(&resolveOpts.viewport, "viewport", "",
		"Viewport size as WIDTHxHEIGHT")
	resolveCmd.Flags().BoolVar(&resolveOpts.disableFlip, "disable-flip", false,
		"Never flip to the opposite placement")
	resolveCmd.Flags().StringVarP(&resolveOpts.output, "output", "o", "text",
		"Output format (text, json, yaml)")

	_ = resolveCmd.MarkFlagRequired("trigger")
	_ = resolveCmd.MarkFlagRequired("overlay")
	_ = resolveCmd.MarkFlagRequired("viewport")
}

// resolveResult is the machine-readable output of resolve.
type resolveResult struct {
	Requested geometry.Placement `json:"requested" yaml:"requested"`
	Flipped   bool               `json:"flipped" yaml:"flipped"`
	Position  geometry.Position  `json:"position" yaml:"position"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	trigger, err := parseInts(resolveOpts.trigger, ",", 4)
	if err != nil {
		return fmt.Errorf("--trigger: %w", err)
	}
	overlay, err := parseInts(resolveOpts.overlay, ",", 2)
	if err != nil {
		return fmt.Errorf("--overlay: %w", err)
	}
	vp, err := parseInts(strings.ToLower(resolveOpts.viewport), "x", 2)
	if err != nil {
		return fmt.Errorf("--viewport: %w", err)
	}
	placement, err := geometry.ParsePlacement(resolveOpts.placement)
	if err != nil {
		return err
	}

	pos := geometry.Resolve(
		geometry.Rect{X: trigger[0], Y: trigger[1], W: trigger[2], H: trigger[3]},
		geometry.Rect{W: overlay[0], H: overlay[1]},
		placement,
		resolveOpts.offset,
		geometry.Viewport{Width: vp[0], Height: vp[1]},
		resolveOpts.disableFlip,
	)

	logger.Debug("resolved position", "requested", placement, "placement", pos.Placement, "top", pos.Top, "left", pos.Left)

	return writeResolve(os.Stdout, resolveOpts.output, resolveResult{
		Requested: placement,
		Flipped:   pos.Flipped(placement),
		Position:  pos,
	})
}

func writeResolve(w io.Writer, format string, res resolveResult) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(res)
	case "text", "":
		flip := ""
		if res.Flipped {
			flip = fmt.Sprintf(" (flipped from %s)", res.Requested)
		}
		_, err := fmt.Fprintf(w, "top=%d left=%d placement=%s%s\n",
			res.Position.Top, res.Position.Left, res.Position.Placement, flip)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// parseInts splits s on sep and parses exactly n integers.
func parseInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d values separated by %q, got %q", n, sep, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
