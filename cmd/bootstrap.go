package cmd

import (
	"context"

	"github.com/openlab-ops/cdboot/events"
	"github.com/openlab-ops/cdboot/exec"
	"github.com/openlab-ops/cdboot/pkg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "reset the pipeline storage claim and start the delivery pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pkg.Load(viper.GetViper())
		if err != nil {
			return err
		}

		runner := &exec.DefaultCommandRunner{}
		claims := exec.NewKubeClaims(runner, viper.GetString("kube.binary"))
		pipelines := exec.NewTknPipelines(runner, viper.GetString("tkn.binary"))

		var notifier events.Notifier
		if cfg.Events.Url != "" {
			notifier, err = events.NewNatsNotifier(cfg.Events)
			if err != nil {
				return err
			}
			defer func() {
				if err := notifier.Close(); err != nil {
					log.Warn().Err(err).Msg("unable to close event sink")
				}
			}()
		}

		b := pkg.NewBootstrapper(cfg, claims, pipelines, notifier)
		return b.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)

	bootstrapCmd.Flags().String("kube-binary", exec.DefaultKubeBinary, "platform CLI to use")
	bootstrapCmd.Flags().String("tkn-binary", exec.DefaultTknBinary, "pipeline CLI to use")

	if err := viper.BindPFlag("kube.binary", bootstrapCmd.Flags().Lookup("kube-binary")); err != nil {
		log.Panic().Err(err).Msg("failed to bind flags")
	}
	if err := viper.BindPFlag("tkn.binary", bootstrapCmd.Flags().Lookup("tkn-binary")); err != nil {
		log.Panic().Err(err).Msg("failed to bind flags")
	}
}
