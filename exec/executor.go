package exec

import (
	"context"
	"time"

	"github.com/openlab-ops/cdboot/sdk"
)

type (
	// Config holds the connection settings for the local container engine.
	Config struct {
		FromEnv bool
		Url     string
	}

	ClaimExecutor interface {
		Reset(ctx context.Context, claim sdk.Claim) error
		AwaitBound(ctx context.Context, name string, interval, timeout time.Duration) error
	}

	PipelineStarter interface {
		Start(ctx context.Context, run sdk.PipelineRun) error
	}

	FeedbackAction string

	// Feedback describes a single bootstrap step event.
	Feedback struct {
		Timestamp int64
		Step      string
		Resource  string
		Action    FeedbackAction
		Detail    string
	}
)

const (
	StartedFeedbackAction FeedbackAction = "started"
	DoneFeedbackAction    FeedbackAction = "done"
	FailedFeedbackAction  FeedbackAction = "failed"
)

func NewFeedback(step, resource string, action FeedbackAction, detail string) *Feedback {
	return &Feedback{
		Timestamp: time.Now().Unix(),
		Step:      step,
		Resource:  resource,
		Action:    action,
		Detail:    detail,
	}
}
