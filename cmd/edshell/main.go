package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"edshell/internal/config"
	"edshell/internal/layout"
	"edshell/internal/registry"
	"edshell/internal/trace"
	"edshell/internal/ui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	configPath string
	layoutPath string
)

var rootCmd = &cobra.Command{
	Use:   "edshell [file...]",
	Short: "Terminal editor shell with split panes and draggable tabs",
	Long: `Edshell arranges editor panes in a resizable split tree. Panes can be
split, merged, and resized; editor tabs can be dragged between panes. The
layout is saved on quit and restored on the next start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if layoutPath != "" {
			cfg.LayoutPath = layoutPath
		}

		ctx := context.Background()
		tracer, err := trace.New(ctx)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer tracer.Shutdown(ctx)

		reg, err := registry.New()
		if err != nil {
			return fmt.Errorf("init file registry: %w", err)
		}
		defer reg.Close()

		state := restoreLayout(cfg.LayoutPath)
		for _, arg := range args {
			src, err := reg.Resolve(arg)
			if err != nil {
				return fmt.Errorf("open %s: %w", arg, err)
			}
			state, err = layout.AddEditor(state, state.ActiveNodeID, layout.Source{
				Path:     src.Path,
				Title:    src.Title,
				Language: src.Language,
				Modified: src.Modified,
			})
			if err != nil {
				return fmt.Errorf("open %s: %w", arg, err)
			}
		}

		shell := ui.NewShell(cfg, reg, tracer, state)
		p := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	},
}

// restoreLayout loads the autosaved layout, falling back to a fresh single
// pane when the file is missing or no longer valid.
func restoreLayout(path string) layout.State {
	if path == "" {
		return layout.NewState()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.NewState()
	}
	state, err := layout.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring saved layout %s: %v\n", path, err)
		return layout.NewState()
	}
	return state
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect or reset the saved layout",
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if layoutPath != "" {
			cfg.LayoutPath = layoutPath
		}
		data, err := os.ReadFile(cfg.LayoutPath)
		if err != nil {
			return fmt.Errorf("no saved layout at %s", cfg.LayoutPath)
		}
		state, err := layout.Decode(data)
		if err != nil {
			return fmt.Errorf("saved layout is invalid: %w", err)
		}
		out, err := layout.Encode(state)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if layoutPath != "" {
			cfg.LayoutPath = layoutPath
		}
		if err := os.Remove(cfg.LayoutPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		fmt.Printf("removed %s\n", cfg.LayoutPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of edshell",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edshell version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "override the saved layout path")
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutResetCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
