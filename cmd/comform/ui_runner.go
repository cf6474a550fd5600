package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"comform/internal/driver"
	"comform/internal/pipeline"
	"comform/internal/ui"
)

type formatOutcome struct {
	results []driver.Result
	err     error
}

func runFormatWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, files, runOpts)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if quit, ok := final.(interface{ Interrupted() bool }); uiErr != nil || (ok && quit.Interrupted()) {
		cancel()
	}
	// the UI may stop reading before the workers finish
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
