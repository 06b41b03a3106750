package cmd

import (
	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/pretty"
	"github.com/joshyorko/setupvm/settings"
	"github.com/joshyorko/setupvm/steps"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the steps of the catalog in execution order",
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := steps.SummonCatalog(settings.Global.Catalog)
		pretty.Guard(err == nil, 1, "Error: %v", err)

		pretty.Header("Steps:")
		for _, step := range catalog.Steps {
			common.Stdout("  %s\n", step.Name)
			if len(step.Actions) > 1 || step.Actions[0].Name != step.Name {
				for _, action := range step.Actions {
					common.Stdout("    - %s\n", action.Name)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
