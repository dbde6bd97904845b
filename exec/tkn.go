package exec

import (
	"context"
	"fmt"
	"strings"

	"github.com/openlab-ops/cdboot/sdk"
)

const DefaultTknBinary = "tkn"

// NewTknPipelines returns a pipeline starter backed by the Tekton CLI.
func NewTknPipelines(runner CommandRunner, binary string) *TknPipelines {
	if binary == "" {
		binary = DefaultTknBinary
	}

	return &TknPipelines{
		runner: runner,
		binary: binary,
	}
}

type TknPipelines struct {
	runner CommandRunner
	binary string
}

var _ PipelineStarter = &TknPipelines{}

// Start launches the pipeline run. With ShowLog set the run's log is
// streamed to the terminal and Start blocks until the run finishes.
func (t *TknPipelines) Start(ctx context.Context, run sdk.PipelineRun) error {
	if run.ShowLog {
		if err := t.runner.RunStreaming(ctx, t.binary, run.Args()...); err != nil {
			return fmt.Errorf("pipeline %s failed: %w", run.Pipeline, err)
		}

		return nil
	}

	out, err := t.runner.Run(ctx, t.binary, run.Args()...)
	if err != nil {
		return fmt.Errorf("unable to start pipeline %s: %w: %s", run.Pipeline, err, strings.TrimSpace(out))
	}

	return nil
}
