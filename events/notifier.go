package events

import (
	"context"

	"github.com/openlab-ops/cdboot/exec"
)

type (
	Config struct {
		Url     string
		Subject string
		Jwt     string
		Seed    string
	}

	// Notifier publishes bootstrap step feedback to an external sink.
	Notifier interface {
		Publish(ctx context.Context, fb *exec.Feedback) error
		Close() error
	}
)

// Noop is used when no event sink is configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) Publish(ctx context.Context, fb *exec.Feedback) error { return nil }
func (Noop) Close() error                                         { return nil }
