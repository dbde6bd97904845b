package exec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openlab-ops/cdboot/sdk"
	"github.com/rs/zerolog/log"
)

const DefaultKubeBinary = "oc"

// NewKubeClaims returns a claim executor backed by the platform CLI.
func NewKubeClaims(runner CommandRunner, binary string) *KubeClaims {
	if binary == "" {
		binary = DefaultKubeBinary
	}

	return &KubeClaims{
		runner: runner,
		binary: binary,
	}
}

type KubeClaims struct {
	runner CommandRunner
	binary string
}

var _ ClaimExecutor = &KubeClaims{}

// Phase returns the claim's status phase, or AbsentPhase when no claim
// with that name exists.
func (k *KubeClaims) Phase(ctx context.Context, name string) (sdk.ClaimPhase, error) {
	out, err := k.runner.Run(ctx, k.binary, "get", "pvc", name, "-o", "jsonpath={.status.phase}")
	if err != nil {
		if strings.Contains(out, "NotFound") {
			return sdk.AbsentPhase, nil
		}

		return sdk.AbsentPhase, fmt.Errorf("unable to get claim %s: %w: %s", name, err, strings.TrimSpace(out))
	}

	return sdk.ClaimPhase(strings.TrimSpace(out)), nil
}

func (k *KubeClaims) delete(ctx context.Context, name string) error {
	out, err := k.runner.Run(ctx, k.binary, "delete", "pvc", name, "--ignore-not-found")
	if err != nil {
		return fmt.Errorf("unable to delete claim %s: %w: %s", name, err, strings.TrimSpace(out))
	}

	return nil
}

func (k *KubeClaims) apply(ctx context.Context, manifest []byte) error {
	out, err := k.runner.RunWithInput(ctx, string(manifest), k.binary, "apply", "-f", "-")
	if err != nil {
		return fmt.Errorf("unable to apply claim manifest: %w: %s", err, strings.TrimSpace(out))
	}

	return nil
}

func (k *KubeClaims) ensureAbsent(ctx context.Context, name string) error {
	phase, err := k.Phase(ctx, name)
	if err != nil {
		return err
	}

	if phase == sdk.AbsentPhase {
		// -- reached our desired state
		return nil
	}

	log.Info().Str("claim", name).Str("phase", string(phase)).Msg("removing existing claim")
	return k.delete(ctx, name)
}

// Reset deletes any existing claim with that name and creates a fresh one.
// Destructive: content bound to the previous claim is discarded.
func (k *KubeClaims) Reset(ctx context.Context, claim sdk.Claim) error {
	if err := k.ensureAbsent(ctx, claim.Name); err != nil {
		return err
	}

	manifest, err := claim.Render()
	if err != nil {
		return err
	}

	return k.apply(ctx, manifest)
}

// AwaitBound polls the claim phase until it reaches Bound, the claim is
// reported Lost, or the timeout elapses.
func (k *KubeClaims) AwaitBound(ctx context.Context, name string, interval, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		phase, err := k.Phase(ctx, name)
		if err != nil {
			return err
		}

		switch phase {
		case sdk.BoundPhase:
			return nil
		case sdk.LostPhase:
			return fmt.Errorf("claim %s is lost", name)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("claim %s did not bind within %s (phase %q)", name, timeout, phase)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
