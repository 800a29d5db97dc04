// Package app provides the entry point for the sekr8s command-line
// application.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nordstrom/sekr8s/pkg/config"
	"github.com/Nordstrom/sekr8s/pkg/errors"
	"github.com/Nordstrom/sekr8s/pkg/kubectl"
	"github.com/Nordstrom/sekr8s/pkg/logger"
	"github.com/Nordstrom/sekr8s/pkg/secret"
)

// NewRootCmd creates a new root command for the sekr8s CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sekr8s",
		Short: "sekr8s reads, creates, and updates Kubernetes secrets",
		Long: `sekr8s is a helper for working with Kubernetes Secret objects through the
cluster tool. It reads secret values, collects new values interactively or
from piped input, and handles the base64 encoding for you.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Initialize()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringP("namespace", "n", "", "Namespace of the secret")
	rootCmd.PersistentFlags().String("kubectl", config.DefaultKubectl, "Path to the cluster tool binary")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	_ = viper.BindPFlag(config.KeyNamespace, rootCmd.PersistentFlags().Lookup("namespace"))
	_ = viper.BindPFlag(config.KeyKubectl, rootCmd.PersistentFlags().Lookup("kubectl"))
	_ = viper.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))

	// Add subcommands
	rootCmd.AddCommand(newGetCommand())
	rootCmd.AddCommand(newSetCommand())
	rootCmd.AddCommand(newCreateCommand())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newManager builds the secret manager from the effective configuration.
func newManager() *secret.Manager {
	cfg := config.Load()
	return secret.NewManager(kubectl.New(cfg.Kubectl, cfg.Namespace))
}

// Run executes the root command and maps the result to a process exit code.
func Run() int {
	return report(os.Stderr, NewRootCmd().Execute())
}

// report prints err and picks the exit code: 0 on success, 1 for the known
// failure modes, 2 for anything unrecognized, which is treated as a defect
// and reported with full detail.
func report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	if errors.IsKnown(err) {
		fmt.Fprintf(w, "Error: %v\n", err)
		if errors.IsExternalTool(err) && strings.Contains(err.Error(), "command not found") {
			fmt.Fprintln(w, "Check that the cluster tool is installed, or point --kubectl at it.")
		}
		return 1
	}

	fmt.Fprintf(w, "Error: unexpected failure: %+v\n", err)
	return 2
}
