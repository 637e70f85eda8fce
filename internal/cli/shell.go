package cli

import (
	"github.com/spf13/cobra"

	"rotterDB/internal/console"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console",
		Long: `Start an interactive SQL> prompt. Statements run one per line.
Type .help for commands, quit or exit to leave.`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}

	repl := console.NewREPL(a.engine, console.Options{
		HistoryFile: a.cfg.HistoryFile,
		Format:      a.cfg.Output,
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
		Logger:      a.logger,
	})
	return repl.Run()
}
