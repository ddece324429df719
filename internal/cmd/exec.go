package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdapi/internal/client"
	"github.com/xdg/cmdapi/internal/pathutil"
	"github.com/xdg/cmdapi/internal/service"
	"github.com/xdg/cmdapi/internal/term"
)

// EnvServer selects the server for client commands when --server is unset.
const EnvServer = "CMDAPI_SERVER"

var (
	execTimeout int
	execDir     string
	execServer  string
	execJSON    bool
)

var execCmd = &cobra.Command{
	Use:   "exec <command>...",
	Short: "Run a shell command on the server",
	Long: `Run a shell command on a cmdapi server and print its output.

Arguments are joined with spaces and interpreted by the server's shell, so
quote anything the local shell should not expand. The command's stdout and
stderr are written to the local stdout and stderr, and cmdapi exits with the
command's exit code.`,
	Example: `  cmdapi exec 'ls -la | head'
  cmdapi exec --dir /srv/app --timeout 120 make test`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().IntVarP(&execTimeout, "timeout", "t", 0, "timeout in seconds (default: server default, 30)")
	execCmd.Flags().StringVarP(&execDir, "dir", "C", "", "working directory on the server")
	addClientFlags(execCmd, &execServer, &execJSON)
	// Everything after the first argument belongs to the remote command.
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}

// addClientFlags registers the flags shared by client commands.
func addClientFlags(cmd *cobra.Command, server *string, jsonOut *bool) {
	cmd.Flags().StringVarP(server, "server", "s", "", "server URL (default $"+EnvServer+" or "+client.DefaultServer+")")
	if jsonOut != nil {
		cmd.Flags().BoolVar(jsonOut, "json", false, "print the full result as JSON")
	}
}

func newClient(server string) *client.Client {
	if server == "" {
		server = os.Getenv(EnvServer)
	}
	return client.New(server)
}

func runExec(cmd *cobra.Command, args []string) error {
	req := service.CommandRequest{Command: strings.Join(args, " ")}
	if cmd.Flags().Changed("timeout") {
		timeout := execTimeout
		req.Timeout = &timeout
	}
	if execDir != "" {
		dir, err := absPath(execDir)
		if err != nil {
			return err
		}
		req.WorkingDirectory = &dir
	}

	res, err := newClient(execServer).Execute(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return printResult(res, execJSON)
}

// printResult writes res and converts a failed command into an exit code.
func printResult(res *service.CommandResult, jsonOut bool) error {
	if jsonOut {
		if err := term.JSON(res); err != nil {
			return err
		}
	} else {
		term.Passthrough(res.Stdout, res.Stderr)
	}

	if res.ReturnCode < 0 {
		term.Warn("command killed by signal %d", -res.ReturnCode)
	}
	if !res.Success {
		return NewExitCodeError(exitCodeFor(res.ReturnCode))
	}
	return nil
}

// absPath expands ~ and makes path absolute relative to the local cwd.
// The server is usually local, so a relative path is almost always meant
// relative to where the user is.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(pathutil.ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return abs, nil
}
