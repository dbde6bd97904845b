package cmd

import (
	"context"
	"os"

	"github.com/openlab-ops/cdboot/exec"
	"github.com/openlab-ops/cdboot/pkg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildContext    string
	buildDockerfile string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "build the service image locally with the container engine",
	Long: `Builds the same image reference the pipeline would produce, using the
local container engine instead of the cluster. Useful to validate the
container build before kicking off the pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pkg.Load(viper.GetViper())
		if err != nil {
			return err
		}

		builder, err := exec.NewImageBuilder(exec.Config{FromEnv: true})
		if err != nil {
			return err
		}
		defer func() {
			if err := builder.Close(); err != nil {
				log.Warn().Err(err).Msg("unable to close docker client")
			}
		}()

		tag := cfg.BuildImage()
		log.Info().Str("tag", tag).Str("context", buildContext).Msg("building image")

		return builder.Build(context.Background(), buildContext, buildDockerfile, tag, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildContext, "context", ".", "build context directory")
	buildCmd.Flags().StringVar(&buildDockerfile, "file", "Dockerfile", "path to the Dockerfile, relative to the context")
}
