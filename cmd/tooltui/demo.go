package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tooltui/internal/geometry"
	"github.com/jmylchreest/tooltui/internal/tui"
)

var demoOpts struct {
	placement   string
	disableFlip bool
	offset      int
	theme       string
	logFile     string
	watch       bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive demo",
	Long: `Launch a full-screen demo with four triggers, one per placement:

  - a hover tooltip (placement from --placement or the config file)
  - a click menu with a close button inside the popup
  - an enterable hover card the pointer can move onto
  - a trigger carrying both a hover hint and a click menu

Key bindings:
  tab/shift+tab   Move focus between triggers
  enter/space     Open the focused trigger's click popup
  esc             Close the focused trigger's popups
  f               Toggle flipping
  c               Clear the event log
  ?               Show help
  q               Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addDemoFlags(demoCmd)
}

func addDemoFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&demoOpts.placement, "placement", "",
		"Placement of the hover tooltip (top, right, bottom, left)")
	cmd.Flags().BoolVar(&demoOpts.disableFlip, "disable-flip", false,
		"Never flip popups to the opposite side")
	cmd.Flags().IntVar(&demoOpts.offset, "offset", -1,
		"Gap in cells between trigger and popup (default from config)")
	cmd.Flags().StringVar(&demoOpts.theme, "theme", "",
		"Overlay theme name (default from config)")
	cmd.Flags().StringVar(&demoOpts.logFile, "log-file", "",
		"Write logs to this file instead of stderr")
	cmd.Flags().BoolVar(&demoOpts.watch, "watch", true,
		"Reload the config file when it changes")
}

func runDemo(cmd *cobra.Command, args []string) error {
	c := *getConfig()

	if demoOpts.placement != "" {
		p, err := geometry.ParsePlacement(demoOpts.placement)
		if err != nil {
			return err
		}
		c.Demo.Placement = p.String()
	}
	if demoOpts.disableFlip {
		c.Widget.DisableFlip = true
	}
	if demoOpts.offset >= 0 {
		c.Widget.DefaultOffset = demoOpts.offset
	}
	if demoOpts.theme != "" {
		c.Theme.Name = demoOpts.theme
	}

	// Logs on stderr would draw over the alternate screen
	if demoOpts.logFile != "" {
		f, err := os.OpenFile(demoOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		setupLogger(f)
	}

	watchPath := ""
	if demoOpts.watch {
		watchPath = configPath()
	}

	return tui.Run(tui.RunOptions{
		Config:     &c,
		ConfigPath: watchPath,
		Logger:     logger,
	})
}
