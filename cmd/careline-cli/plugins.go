package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/careline/careline/plugin"
	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List registered plugin factories",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := plugin.RegisteredPlugins()
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE")
		for _, name := range names {
			factory, ok := plugin.GetFactory(name)
			if !ok {
				continue
			}
			p := factory()
			fmt.Fprintf(w, "%s\t%s\n", p.Name(), p.Type())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
