package toast

import (
	"context"

	"campus-notify/pkg/log"
)

// LogPresenter renders toasts to the structured log. It is the headless
// default; an embedding UI supplies its own Presenter.
type LogPresenter struct {
	logger log.Logger
}

// NewLogPresenter creates a LogPresenter.
func NewLogPresenter(logger log.Logger) *LogPresenter {
	return &LogPresenter{logger: logger}
}

// Show logs the toast.
func (p *LogPresenter) Show(t Toast) error {
	p.logger.Infof(context.Background(), "toast [%s] %s: %s", t.Event.Type, t.Event.Title, t.Event.Message)
	return nil
}

// Hide is a no-op for the log presenter.
func (p *LogPresenter) Hide(id string) {}
