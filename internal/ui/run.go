package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/driver"
)

type outcome struct {
	res *driver.Result
	err error
}

// RunCompile compiles req in the background while the progress view renders
// to out. The compile error wins over a UI error.
func RunCompile(ctx context.Context, title string, req driver.Request, out io.Writer) (*driver.Result, error) {
	events := make(chan driver.Event, 64)
	done := make(chan outcome, 1)

	go func() {
		req.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Compile(ctx, req)
		close(events)
		done <- outcome{res: res, err: err}
	}()

	program := tea.NewProgram(NewProgressModel(title, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы компиляция не заблокировалась
		for range events {
		}
	}
	result := <-done
	if result.err != nil {
		return result.res, result.err
	}
	return result.res, uiErr
}
