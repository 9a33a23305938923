package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type bstvizApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

func newApp() *bstvizApp {
	baseCmd, baseConfig := newBaseCmd()
	baseCmd.AddCommand(newReplCmd(baseConfig))
	baseCmd.AddCommand(newDemoCmd(baseConfig))
	return &bstvizApp{baseCmd: baseCmd, baseConfig: baseConfig}
}

// Execute runs the application, the logger and the metrics exporter are
// released once the command returns.
func (a *bstvizApp) Execute(ctx context.Context) (err error) {
	defer func() {
		err = multierr.Append(err, a.baseConfig.shutdown(context.Background()))
	}()
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd() (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{}
	baseCmd := &cobra.Command{
		Use:           "bstviz",
		Short:         "Animated binary search tree",
		Long:          `Insert and delete keys of an unbalanced binary search tree and watch every step, or replay its traversals.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If subcommand does not define PersistentPreRunE, the one from base cmd is used.
			if err := initializeConfig(cmd, config); err != nil {
				return errors.Wrap(err, "failed to initialize configuration")
			}
			config.logger.Banner(banner{})
			return nil
		},
	}
	config.addConfigurationFlags(baseCmd)
	return baseCmd, config
}
