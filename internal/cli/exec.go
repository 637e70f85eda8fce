package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"rotterDB/internal/console"
)

var errStatementFailed = errors.New("statement failed")

func newExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <statement...>",
		Short: "Run a single statement",
		Long: `Run one statement and print its result. Arguments are joined with spaces,
so the statement may be quoted as a whole or passed word by word.`,
		Example: `  rotterdb exec "CREATE TABLE users (name TEXT, age INT)"
  rotterdb exec "INSERT INTO users VALUES ('Ann', 30)"
  rotterdb -o json exec SELECT '*' FROM users`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			res := a.engine.Execute(strings.Join(args, " "))
			if err := console.Render(cmd.OutOrStdout(), res, a.cfg.Output); err != nil {
				return err
			}
			if !res.OK() {
				return errStatementFailed
			}
			return nil
		},
	}
}
