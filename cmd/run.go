package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/frontend"
	"github.com/joshyorko/setupvm/operations"
	"github.com/joshyorko/setupvm/pretty"
	"github.com/joshyorko/setupvm/settings"
	"github.com/joshyorko/setupvm/steps"
	"github.com/joshyorko/setupvm/sudo"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Select and run provisioning steps",
	Long: `Select and run provisioning steps.

On an interactive terminal every step is offered with a yes/no question, or on
a full screen selection list with --fancy. With --unattended, or when input or
output is not a terminal, every step runs without asking.

Exit code is 0 when all selected steps succeeded or were skipped, 1 on the
first failure, and 130 when interrupted.`,
	Run: runSetup,
}

func init() {
	for _, command := range []*cobra.Command{rootCmd, runCmd} {
		flags := command.Flags()
		flags.BoolVarP(&unattendedFlag, "unattended", "u", false, "run every step without asking")
		flags.BoolVarP(&fancyFlag, "fancy", "f", false, "use the full screen selection and progress display")
		flags.BoolVarP(&verboseFlag, "verbose", "v", false, "log the output of step commands")
		flags.BoolVar(&noSudoFlag, "no-sudo", false, "do not acquire or keep sudo credentials")
	}
	rootCmd.AddCommand(runCmd)
}

func chooseElevator() sudo.Elevator {
	if !settings.Global.SudoEnabled || os.Geteuid() == 0 {
		return sudo.NoElevation{}
	}
	return sudo.NewKeeper(settings.Global.SudoInterval)
}

func runSetup(cmd *cobra.Command, args []string) {
	dashcore.CustomSpinner = settings.Global.Spinner

	catalog, err := steps.SummonCatalog(settings.Global.Catalog)
	pretty.Guard(err == nil, 1, "Error: %v", err)
	common.Debug("catalog %q offers %d steps: %v", settings.Global.Catalog, len(catalog.Steps), catalog.Names())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	executor := steps.NewExecutor(verboseFlag, settings.Global.Shell)
	ui := frontend.Choose(frontend.Options{
		Unattended:     unattendedFlag,
		Fancy:          fancyFlag,
		StdinTerminal:  pretty.StdinTerminal,
		StdoutTerminal: pretty.StdoutTerminal,
		Tick:           settings.Global.Tick,
		Height:         pretty.TerminalHeight(),
		Cancel:         cancel,
	})

	runner := operations.NewRunner(ui, chooseElevator(), executor, catalog.Build(executor))
	result := runner.Run(ctx)
	showResult(result)

	if result.ExitCode != operations.ExitSuccess {
		pretty.Exit(result.ExitCode, "")
	}
}

// showResult prints the single closing block: the report, and on failure the
// error detail after it. The summary line goes to the log.
func showResult(result operations.Result) {
	common.WaitLogs()
	if result.Quit {
		common.Debug("quit at selection, nothing was run")
		return
	}
	if len(result.Entries) > 0 {
		for _, entry := range result.Entries {
			common.Stdout("%s\n", pretty.ReportLine(entry.Status, entry.Name))
		}
	} else if len(result.Report) > 0 {
		common.Stdout("%s\n", result.Report)
	}
	if detail := strings.TrimSpace(result.Detail); len(detail) > 0 {
		pretty.Error(detail)
	}
	if stats := result.Stats; stats.Total > 0 {
		common.Log("%d steps: %d ok, %d skipped, %d failed in %s",
			stats.Total, stats.Success, stats.Skipped, stats.Failure, stats.Elapsed.Round(time.Millisecond))
	}
	if result.Interrupted {
		common.Log("%sInterrupted.%s", pretty.Yellow, pretty.Reset)
	}
}
