package exec

import (
	"context"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// CommandRunner abstracts the external CLI invocations so they can be
// faked in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
	RunWithInput(ctx context.Context, stdin string, name string, args ...string) (string, error)
	RunStreaming(ctx context.Context, name string, args ...string) error
}

type DefaultCommandRunner struct{}

var _ CommandRunner = &DefaultCommandRunner{}

func (d *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	log.Debug().Str("cmd", name).Strs("args", args).Msg("running command")

	cmd := osexec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()

	log.Debug().Str("cmd", name).Msgf("command output: %s", string(out))
	return string(out), err
}

func (d *DefaultCommandRunner) RunWithInput(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	log.Debug().Str("cmd", name).Strs("args", args).Msg("running command with stdin")

	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()

	log.Debug().Str("cmd", name).Msgf("command output: %s", string(out))
	return string(out), err
}

// RunStreaming wires the command directly to the caller's terminal. Used
// for the pipeline log follow, where output must not be buffered.
func (d *DefaultCommandRunner) RunStreaming(ctx context.Context, name string, args ...string) error {
	log.Debug().Str("cmd", name).Strs("args", args).Msg("running command, streaming output")

	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// FakeCommandRunner records every invocation and delegates the response to
// Handler. A nil Handler returns empty output and no error.
type FakeCommandRunner struct {
	Calls   [][]string
	Inputs  []string
	Handler func(name string, args ...string) (string, error)
}

var _ CommandRunner = &FakeCommandRunner{}

func (f *FakeCommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.Calls = append(f.Calls, append([]string{name}, args...))
	f.Inputs = append(f.Inputs, "")

	if f.Handler == nil {
		return "", nil
	}
	return f.Handler(name, args...)
}

func (f *FakeCommandRunner) RunWithInput(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	f.Calls = append(f.Calls, append([]string{name}, args...))
	f.Inputs = append(f.Inputs, stdin)

	if f.Handler == nil {
		return "", nil
	}
	return f.Handler(name, args...)
}

func (f *FakeCommandRunner) RunStreaming(ctx context.Context, name string, args ...string) error {
	f.Calls = append(f.Calls, append([]string{name}, args...))
	f.Inputs = append(f.Inputs, "")

	if f.Handler == nil {
		return nil
	}
	_, err := f.Handler(name, args...)
	return err
}
