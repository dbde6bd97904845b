package pkg

import (
	"context"
	"fmt"

	"github.com/openlab-ops/cdboot/events"
	"github.com/openlab-ops/cdboot/exec"
	"github.com/rs/zerolog/log"
)

const (
	StepClaim    = "claim"
	StepBind     = "bind"
	StepPipeline = "pipeline"
)

// NewBootstrapper wires the bootstrap sequence. A nil notifier disables
// event publishing.
func NewBootstrapper(cfg Config, claims exec.ClaimExecutor, pipelines exec.PipelineStarter, notifier events.Notifier) *Bootstrapper {
	if notifier == nil {
		notifier = events.Noop{}
	}

	return &Bootstrapper{
		cfg:       cfg,
		claims:    claims,
		pipelines: pipelines,
		notifier:  notifier,
	}
}

// Bootstrapper performs a single forward pass: reset the storage claim,
// wait for it to bind, start the delivery pipeline. Any step error aborts
// the sequence immediately; there is no rollback.
type Bootstrapper struct {
	cfg       Config
	claims    exec.ClaimExecutor
	pipelines exec.PipelineStarter
	notifier  events.Notifier
}

func (b *Bootstrapper) Run(ctx context.Context) error {
	claim := b.cfg.StorageClaim()

	log.Info().Str("claim", claim.Name).Str("capacity", claim.Capacity).Msg("resetting storage claim")
	b.notify(ctx, StepClaim, claim.Name, exec.StartedFeedbackAction, "")
	if err := b.claims.Reset(ctx, claim); err != nil {
		b.notify(ctx, StepClaim, claim.Name, exec.FailedFeedbackAction, err.Error())
		return fmt.Errorf("unable to reset storage claim: %w", err)
	}
	b.notify(ctx, StepClaim, claim.Name, exec.DoneFeedbackAction, "")

	log.Info().Str("claim", claim.Name).Dur("timeout", b.cfg.Wait.Timeout).Msg("waiting for claim to bind")
	b.notify(ctx, StepBind, claim.Name, exec.StartedFeedbackAction, "")
	if err := b.claims.AwaitBound(ctx, claim.Name, b.cfg.Wait.Interval, b.cfg.Wait.Timeout); err != nil {
		b.notify(ctx, StepBind, claim.Name, exec.FailedFeedbackAction, err.Error())
		return fmt.Errorf("claim did not become ready: %w", err)
	}
	b.notify(ctx, StepBind, claim.Name, exec.DoneFeedbackAction, "")

	run := b.cfg.PipelineRun()

	log.Info().Str("pipeline", run.Pipeline).Str("image", b.cfg.BuildImage()).Msg("starting pipeline")
	b.notify(ctx, StepPipeline, run.Pipeline, exec.StartedFeedbackAction, "")
	if err := b.pipelines.Start(ctx, run); err != nil {
		b.notify(ctx, StepPipeline, run.Pipeline, exec.FailedFeedbackAction, err.Error())
		return err
	}
	b.notify(ctx, StepPipeline, run.Pipeline, exec.DoneFeedbackAction, "")

	log.Info().Str("pipeline", run.Pipeline).Msg("bootstrap complete")
	return nil
}

// notify is fire and forget: a failing event sink never fails the sequence.
func (b *Bootstrapper) notify(ctx context.Context, step, resource string, action exec.FeedbackAction, detail string) {
	fb := exec.NewFeedback(step, resource, action, detail)
	if err := b.notifier.Publish(ctx, fb); err != nil {
		log.Warn().Err(err).Str("step", step).Msg("unable to publish feedback")
	}
}
