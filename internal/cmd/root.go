// Package cmd implements the CLI commands for cmdapi.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdapi/internal/term"
	"github.com/xdg/cmdapi/internal/version"
)

// Persistent flags shared by all subcommands.
var (
	configPath string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cmdapi",
	Short: "Terminal Command API",
	Long: `cmdapi runs shell commands on behalf of HTTP clients.

"cmdapi serve" starts the API server. The other commands are clients for a
running server: "exec" runs an arbitrary command, "plan" runs the planning
command (claude -p) and "health" checks that the server is up.

The server has no authentication. Anyone who can reach it can run commands
with its privileges.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		term.SetSilent(quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $XDG_CONFIG_HOME/cmdapi/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress output; client commands still set the exit code")
}

// Execute runs the root command and returns any error. Errors other than
// *ExitCodeError are printed before returning.
func Execute() error {
	err := rootCmd.Execute()
	var exitErr *ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		term.Error("%v", err)
	}
	return err
}
