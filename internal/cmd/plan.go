package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdapi/internal/service"
)

var (
	planProject string
	planTimeout int
	planServer  string
	planJSON    bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the planning command on the server",
	Long: `Run "claude -p" on a cmdapi server, optionally in a project directory.

The planning command reads its prompt from stdin, which the server does not
provide, so this is mostly useful for checking that the planning tool is
installed and reachable.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planProject, "project", "C", "", "project directory on the server")
	planCmd.Flags().IntVarP(&planTimeout, "timeout", "t", 0, "timeout in seconds, 0 for none (default: server default)")
	addClientFlags(planCmd, &planServer, &planJSON)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	var req service.PlanRequest
	if cmd.Flags().Changed("timeout") {
		timeout := planTimeout
		req.Timeout = &timeout
	}
	if planProject != "" {
		dir, err := absPath(planProject)
		if err != nil {
			return err
		}
		req.ProjectPath = &dir
	}

	res, err := newClient(planServer).Plan(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}
	return printResult(res, planJSON)
}
