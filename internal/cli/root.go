package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/PrismCut/internal/config"
)

var (
	version = "dev" // semantic version, injected via ldflags
	commit  = ""    // git commit SHA
	date    = ""    // build timestamp
)

// SetVersion sets the version information displayed by the version command.
// Typically called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the prismcut CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	var verbose bool
	configDir := config.DefaultConfigDir()

	root := &cobra.Command{
		Use:          "prismcut",
		Short:        "PrismCut decomposes prismatic reactor block cross-sections into structured meshes",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configDir, "config-dir", configDir, "application configuration directory")

	root.AddCommand(newBuildCmd(&configDir))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newProfilesCmd(&configDir))
	root.AddCommand(newMaterialsCmd(&configDir))
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prismcut %s\n", version)
			if commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", commit)
			}
			if date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", date)
			}
		},
	}
}

// loadModel resolves a model argument: either a TOML file path or a built-in
// preset referenced as "preset:<name>".
func loadModel(arg string) (*config.Model, error) {
	if name, ok := strings.CutPrefix(arg, "preset:"); ok {
		return config.Preset(name)
	}
	return config.Load(arg)
}

func profilesPath(configDir string) string {
	return filepath.Join(configDir, "profiles.json")
}

func appConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}
