package main

import (
	"fmt"
	"os"

	"github.com/joshyorko/setupvm/cmd"
	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/pretty"
)

func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.Fatal("main", fmt.Errorf("unexpected panic: %v", status))
		common.WaitLogs()
		pretty.ShowCursor()
		panic(status)
	}
	common.WaitLogs()
}

func main() {
	defer ExitProtection()
	pretty.Setup()

	cmd.Execute()
}
