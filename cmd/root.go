package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/productfactory/app"
	"github.com/kilianp07/productfactory/config"
	"github.com/kilianp07/productfactory/infra/logger"
)

type options struct {
	cfgPath string
	cfg     *config.Config
}

// NewRootCmd builds the productfactory command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "productfactory",
		Short:         "Factory Method product catalog with a browser UI and JSON API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), o.cfg)
		},
	}
	root.PersistentFlags().StringVarP(&o.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.AddCommand(newTypesCmd(o), newCreateCmd(o))
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (o *options) load() error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(cfg.Logging); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	o.cfg = cfg
	return nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
		_ = logger.Close()
	}()
	return svc.Run(ctx)
}
