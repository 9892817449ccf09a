package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/matzehuels/shelfview/internal/cli"
	"github.com/matzehuels/shelfview/pkg/buildinfo"
)

func main() {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	// fang adds styled help and errors, --version, man pages and signal handling.
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(buildinfo.Version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
