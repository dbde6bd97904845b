package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/openlab-ops/cdboot/exec"
)

const DefaultSubject = "cdboot"

// NewNatsNotifier connects to the configured NATS cluster. Feedback is
// published fire-and-forget to <subject>.bootstrap.<step>.
func NewNatsNotifier(cfg Config) (Notifier, error) {
	natsOpts := []nats.Option{
		nats.Name("cdboot"),
	}

	if cfg.Jwt != "" {
		natsOpts = append(natsOpts, nats.UserJWTAndSeed(cfg.Jwt, cfg.Seed))
	}

	nc, err := nats.Connect(cfg.Url, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to event cluster: %w", err)
	}

	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	return &natsNotifier{
		nc:      nc,
		subject: subject,
	}, nil
}

type natsNotifier struct {
	nc      *nats.Conn
	subject string
}

func (n *natsNotifier) Publish(ctx context.Context, fb *exec.Feedback) error {
	b, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("unable to marshal feedback: %w", err)
	}

	subject := fmt.Sprintf("%s.bootstrap.%s", n.subject, fb.Step)
	if err := n.nc.Publish(subject, b); err != nil {
		return fmt.Errorf("unable to publish feedback to %q: %w", subject, err)
	}

	return nil
}

func (n *natsNotifier) Close() error {
	return n.nc.Drain()
}
