package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zwallet/internal/cli"
	"github.com/zarlcorp/zwallet/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zwallet"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 {
		runCLI(ctx, os.Args[1])
		_ = app.Close()
		return
	}

	if err := runTUI(); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, cmd string) {
	switch cmd {
	case "version":
		fmt.Printf("zwallet %s\n", version)
	case "login":
		cli.CmdLogin(os.Args[2:])
	case "logout":
		cli.CmdLogout()
	case "register":
		cli.CmdRegister(os.Args[2:])
	case "whoami":
		cli.CmdWhoami()
	case "balance":
		cli.CmdBalance()
	case "deposit":
		cli.CmdDeposit(os.Args[2:])
	case "transfer":
		cli.CmdTransfer(os.Args[2:])
	case "contacts":
		cli.CmdContacts()
	case "contact-add":
		cli.CmdContactAdd(os.Args[2:])
	case "history":
		cli.CmdHistory(os.Args[2:])
	case "reset":
		cli.CmdReset(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "zwallet: unknown command %q\n", cmd)
		os.Exit(1)
	}
}

func runTUI() error {
	dataDir := cli.DataDir()
	firstRun := cli.IsFirstRun(dataDir)

	m := tui.New(version, dataDir, firstRun)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(tui.Model); ok {
		fm.Close()
	}

	return nil
}
