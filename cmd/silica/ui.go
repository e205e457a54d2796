package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"silica/internal/driver"
	"silica/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFmtWithUI runs the formatting pass in the background and feeds per-file
// completion events into the progress view.
func runFmtWithUI(cmd *cobra.Command, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.ListSourceFiles(cmd.Context(), paths)
	if err != nil {
		return nil, err
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	opts.Progress = func(res driver.FormatResult, done, total int) {
		events <- ui.Event{Path: res.Path, Status: resultStatus(res)}
	}

	go func() {
		results, err := driver.FormatPaths(cmd.Context(), paths, opts)
		outcomeCh <- fmtOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("silica fmt", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func resultStatus(res driver.FormatResult) ui.Status {
	switch {
	case res.Err != nil:
		return ui.StatusError
	case res.Changed:
		return ui.StatusChanged
	default:
		return ui.StatusClean
	}
}
