package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/studio/pkg/cli"
	"github.com/haivivi/studio/pkg/studio"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		modes := studio.Modes()
		if outputJSON {
			return outputResult(modes, true)
		}

		w := tabwriter.NewWriter(cli.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODE\tSTAGES\tTITLE")
		for _, m := range modes {
			stages := make([]string, len(m.Stages))
			for i, s := range m.Stages {
				stages[i] = string(s)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.Mode, strings.Join(stages, ","), m.Title)
		}
		return w.Flush()
	},
}
