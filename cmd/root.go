package cmd

import (
	"fmt"
	"os"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/pretty"
	"github.com/joshyorko/setupvm/settings"
	"github.com/spf13/cobra"
)

var (
	configFile     string
	catalogFile    string
	unattendedFlag bool
	fancyFlag      bool
	verboseFlag    bool
	noSudoFlag     bool
	silentFlag     bool
	debugFlag      bool
	traceFlag      bool
	versionFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "setupvm",
	Short: "Provision a fresh Linux VM, one selectable step at a time",
	Long: `setupvm runs an ordered list of provisioning steps for a fresh Debian or
Ubuntu desktop VM. The operator picks which steps to run, then watches each
step succeed, skip when its goal already holds, or fail with the captured
error output.

Without arguments it behaves like "setupvm run".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
		if versionFlag {
			common.Stdout("%s\n", common.Version)
			pretty.Exit(0, "")
		}
		summonSettings(cmd)
	},
	Run: runSetup,
}

// Execute runs the command line. Failures surface as exit code panics.
func Execute() {
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		pretty.Exit(1, "Error: %v", err)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", fmt.Sprintf("settings file (default is $%s/settings.yaml)", common.Product().HomeVariable()))
	flags.StringVar(&catalogFile, "catalog", "", "step catalog file (default is the built-in catalog)")
	flags.BoolVar(&silentFlag, "silent", false, "be less verbose on output")
	flags.BoolVar(&debugFlag, "debug", false, "to get debug output where available")
	flags.BoolVar(&traceFlag, "trace", false, "to get trace output where available")
	flags.BoolVar(&versionFlag, "version", false, "show setupvm version and exit")
	flags.BoolVar(&common.LogLinenumbers, "numbers", false, "put line numbers on debug and trace output")

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func summonSettings(cmd *cobra.Command) {
	config := settings.Config(configFile)
	if flag := cmd.Root().PersistentFlags().Lookup("catalog"); flag != nil {
		config.BindPFlag(settings.StepsCatalog, flag)
	}
	if noSudoFlag {
		config.Set(settings.SudoEnabled, false)
	}
	loaded, err := settings.SummonSettings(config)
	pretty.Guard(err == nil, 1, "Error: %v", err)
	if len(loaded.Source) > 0 {
		common.Debug("settings loaded from %q", loaded.Source)
	}
	if !loaded.Iconic {
		pretty.ForceIcons(false)
	}
}
