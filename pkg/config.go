package pkg

import (
	"fmt"
	"strings"
	"time"

	"github.com/openlab-ops/cdboot/events"
	"github.com/openlab-ops/cdboot/sdk"
	"github.com/spf13/viper"
)

type Config struct {
	Claim    ClaimConfig
	Pipeline PipelineConfig
	Source   SourceConfig
	Image    ImageConfig
	Wait     WaitConfig
	Events   events.Config
}

type ClaimConfig struct {
	Name       string
	Capacity   string
	AccessMode string
}

type PipelineConfig struct {
	Name      string
	Workspace string
}

type SourceConfig struct {
	Repo   string
	Branch string
}

type ImageConfig struct {
	Registry  string
	Namespace string
	Name      string
	Tag       string
}

type WaitConfig struct {
	Timeout  time.Duration
	Interval time.Duration
}

// SetDefaults registers every configurable key so viper picks them up from
// the config file or the CDBOOT_* environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("claim.name", "accounts-pvc")
	v.SetDefault("claim.capacity", "1Gi")
	v.SetDefault("claim.accessmode", "ReadWriteOnce")

	v.SetDefault("pipeline.name", "cd-pipeline")
	v.SetDefault("pipeline.workspace", "pipeline-workspace")

	v.SetDefault("source.repo", "https://github.com/openlab-ops/accounts.git")
	v.SetDefault("source.branch", "master")

	v.SetDefault("image.registry", "image-registry.openshift-image-registry.svc:5000")
	v.SetDefault("image.namespace", "")
	v.SetDefault("image.name", "accounts")
	v.SetDefault("image.tag", "1")

	v.SetDefault("wait.timeout", time.Minute)
	v.SetDefault("wait.interval", 2*time.Second)

	v.SetDefault("events.url", "")
	v.SetDefault("events.subject", events.DefaultSubject)
	v.SetDefault("events.jwt", "")
	v.SetDefault("events.seed", "")
}

// Load reads the configuration out of viper and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.StorageClaim().Validate(); err != nil {
		return err
	}

	if len(strings.TrimSpace(c.Pipeline.Name)) == 0 {
		return fmt.Errorf("pipeline.name is required")
	}

	if len(strings.TrimSpace(c.Image.Namespace)) == 0 {
		return fmt.Errorf("image.namespace is required (set CDBOOT_IMAGE_NAMESPACE)")
	}

	if c.Wait.Timeout <= 0 || c.Wait.Interval <= 0 {
		return fmt.Errorf("wait.timeout and wait.interval must be positive")
	}

	return nil
}

// StorageClaim returns the claim the bootstrap sequence owns.
func (c Config) StorageClaim() sdk.Claim {
	return sdk.Claim{
		Name:       c.Claim.Name,
		Capacity:   c.Claim.Capacity,
		AccessMode: c.Claim.AccessMode,
	}
}

// BuildImage returns the target image reference the pipeline builds,
// composed from the registry host, namespace, image name and tag.
func (c Config) BuildImage() string {
	return fmt.Sprintf("%s/%s/%s:%s", c.Image.Registry, c.Image.Namespace, c.Image.Name, c.Image.Tag)
}

// PipelineRun returns the run the bootstrap sequence starts, params in the
// order the pipeline's schema declares them.
func (c Config) PipelineRun() sdk.PipelineRun {
	return sdk.PipelineRun{
		Pipeline: c.Pipeline.Name,
		Params: []sdk.Param{
			{Name: "repo-url", Value: c.Source.Repo},
			{Name: "branch", Value: c.Source.Branch},
			{Name: "build-image", Value: c.BuildImage()},
		},
		Workspace: sdk.WorkspaceBinding{
			Name:      c.Pipeline.Workspace,
			ClaimName: c.Claim.Name,
		},
		ShowLog: true,
	}
}
