package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tooltui/internal/theme"
)

var configOpts struct {
	output string
	save   bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration tooltui runs with: the config file merged over
the built-in defaults. Use --save to write it back to the config file, which
creates a fully populated file to edit.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available overlay themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(themesCmd)

	configCmd.Flags().StringVarP(&configOpts.output, "output", "o", "toml",
		"Output format (toml, yaml)")
	configCmd.Flags().BoolVar(&configOpts.save, "save", false,
		"Write the effective configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	c := getConfig()

	if configOpts.save {
		path := configPath()
		if err := c.Save(path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("config saved", "path", path)
		return nil
	}

	return c.Encode(os.Stdout, strings.ToLower(configOpts.output))
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.ListAvailableThemes()
	if err != nil {
		return err
	}
	current := getConfig().Theme.Name
	for _, t := range themes {
		marker := " "
		if t.Name == current {
			marker = "*"
		}
		source := "bundled"
		if !t.IsBundled {
			source = t.Path
		}
		fmt.Printf("%s %-16s %s\n", marker, t.Name, source)
	}
	return nil
}
