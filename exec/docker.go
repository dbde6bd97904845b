package exec

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
)

// NewImageBuilder returns a builder backed by the local container engine.
func NewImageBuilder(cfg Config) (*ImageBuilder, error) {
	b := &ImageBuilder{
		clientOpts: []client.Opt{
			client.WithAPIVersionNegotiation(),
		},
	}

	if cfg.FromEnv {
		b.clientOpts = append(b.clientOpts, client.FromEnv)
	} else {
		if cfg.Url != "" {
			b.clientOpts = append(b.clientOpts, client.WithHost(cfg.Url))
		}
	}

	dc, err := client.NewClientWithOpts(b.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create docker client: %w", err)
	}
	b.dc = dc

	return b, nil
}

type ImageBuilder struct {
	clientOpts []client.Opt
	dc         client.APIClient
}

// Build builds contextDir/dockerfile into an image tagged tag, copying the
// engine's build output to out.
func (b *ImageBuilder) Build(ctx context.Context, contextDir, dockerfile, tag string, out io.Writer) error {
	buildCtx, err := archive.TarWithOptions(contextDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("unable to tar build context %s: %w", contextDir, err)
	}
	defer buildCtx.Close()

	resp, err := b.dc.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: dockerfile,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("unable to build image %s: %w", tag, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("unable to read build output: %w", err)
	}

	return nil
}

func (b *ImageBuilder) Close() error {
	return b.dc.Close()
}
