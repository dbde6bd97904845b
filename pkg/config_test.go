package pkg

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.Set("image.namespace", "myproj")
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(testViper())
	require.NoError(t, err)

	assert.Equal(t, "accounts-pvc", cfg.Claim.Name)
	assert.Equal(t, "1Gi", cfg.Claim.Capacity)
	assert.Equal(t, "ReadWriteOnce", cfg.Claim.AccessMode)
	assert.Equal(t, "cd-pipeline", cfg.Pipeline.Name)
	assert.Equal(t, "pipeline-workspace", cfg.Pipeline.Workspace)
	assert.Equal(t, "master", cfg.Source.Branch)
	assert.Equal(t, time.Minute, cfg.Wait.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Wait.Interval)
}

func TestBuildImage(t *testing.T) {
	cfg, err := Load(testViper())
	require.NoError(t, err)

	assert.Equal(t, "image-registry.openshift-image-registry.svc:5000/myproj/accounts:1", cfg.BuildImage())
}

func TestPipelineRun(t *testing.T) {
	cfg, err := Load(testViper())
	require.NoError(t, err)

	run := cfg.PipelineRun()
	assert.Equal(t, "cd-pipeline", run.Pipeline)
	assert.True(t, run.ShowLog)
	assert.Equal(t, "accounts-pvc", run.Workspace.ClaimName)

	require.Len(t, run.Params, 3)
	assert.Equal(t, "repo-url", run.Params[0].Name)
	assert.Equal(t, "branch", run.Params[1].Name)
	assert.Equal(t, "build-image", run.Params[2].Name)
	assert.Equal(t, "image-registry.openshift-image-registry.svc:5000/myproj/accounts:1", run.Params[2].Value)
}

func TestLoadEventsCredentialsFromEnv(t *testing.T) {
	t.Setenv("CDBOOT_EVENTS_JWT", "ey.token")
	t.Setenv("CDBOOT_EVENTS_SEED", "SUACC")

	// mirror the production viper setup from cmd/root.go
	v := testViper()
	v.SetEnvPrefix("CDBOOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "ey.token", cfg.Events.Jwt)
	assert.Equal(t, "SUACC", cfg.Events.Seed)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{
			name:    "namespace missing",
			mutate:  func(v *viper.Viper) { v.Set("image.namespace", "") },
			wantErr: "image.namespace is required",
		},
		{
			name:    "capacity unparsable",
			mutate:  func(v *viper.Viper) { v.Set("claim.capacity", "lots") },
			wantErr: "invalid claim capacity",
		},
		{
			name:    "unknown access mode",
			mutate:  func(v *viper.Viper) { v.Set("claim.accessmode", "ReadWriteNever") },
			wantErr: "unknown access mode",
		},
		{
			name:    "pipeline name empty",
			mutate:  func(v *viper.Viper) { v.Set("pipeline.name", "  ") },
			wantErr: "pipeline.name is required",
		},
		{
			name:    "non-positive wait",
			mutate:  func(v *viper.Viper) { v.Set("wait.interval", "0s") },
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testViper()
			tt.mutate(v)

			_, err := Load(v)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
