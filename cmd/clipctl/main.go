package main

import (
	"os"

	clipctlcmd "github.com/clipshare/clipctl/pkg/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := clipctlcmd.NewRootCommand(clipctlcmd.DefaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
