package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"rotterDB/internal/console"
)

func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			names, err := a.engine.ListTables()
			if err != nil {
				return err
			}
			slices.Sort(names)

			w := cmd.OutOrStdout()
			if strings.EqualFold(a.cfg.Output, console.FormatJSON) {
				if names == nil {
					names = []string{}
				}
				return json.NewEncoder(w).Encode(names)
			}

			if len(names) == 0 {
				_, _ = fmt.Fprintln(w, "(no tables)")
				return nil
			}
			for _, n := range names {
				_, _ = fmt.Fprintln(w, n)
			}
			return nil
		},
	}
}
