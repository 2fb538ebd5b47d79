// Package cli implements yojanactl, a terminal client that queries the schemes dataset directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/config"
	"github.com/yojanadost/yojana/internal/domain"
	logpkg "github.com/yojanadost/yojana/internal/logger"
	datasetrepo "github.com/yojanadost/yojana/internal/repository/dataset"
	"github.com/yojanadost/yojana/internal/version"
)

const defaultSource = "data/schemes.json"

// options are the persistent flags shared by every subcommand.
type options struct {
	source   string
	timeout  time.Duration
	verbose  bool
	endpoint string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the yojanactl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "yojanactl",
		Short: "Browse government schemes from the terminal",
		Long: `yojanactl loads the schemes dataset and lets you search, filter, sort
and page through it, list categories and states, or ask the scheme assistant.

The dataset location comes from --dataset, then from config/<ENV>.yaml,
then defaults to data/schemes.json.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init()
		},
	}

	root.PersistentFlags().StringVar(&opts.source, "dataset", "", "dataset file path or http(s) URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "dataset load timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newQueryCmd(opts),
		newSchemeCmd(opts),
		newCategoriesCmd(opts),
		newStatesCmd(opts),
		newStatsCmd(opts),
		newChatCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *options) init() error {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger, err := logpkg.NewLogger(config.GetEnv(), level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	o.logger = logger

	// The config file is optional for the CLI.
	if cfg, err := config.Load(config.GetEnv()); err == nil {
		o.cfg = &cfg
	} else {
		o.logger.Debug("config not loaded, using flags", zap.Error(err))
	}

	if o.source == "" {
		o.source = defaultSource
		if o.cfg != nil {
			o.source = o.cfg.Dataset.Source
		}
	}
	return nil
}

// loadDataset loads the dataset once. An empty dataset is reported but usable.
func (o *options) loadDataset(ctx context.Context) (*datasetrepo.Repo, error) {
	repo := datasetrepo.New(datasetrepo.NewLoader(o.source, o.timeout), datasetrepo.Metrics{}, o.logger)
	if _, err := repo.Reload(ctx); err != nil {
		if !errors.Is(err, domain.ErrEmptyDataset) {
			return nil, err
		}
		o.logger.Warn("dataset is empty", zap.String("source", o.source))
	}
	return repo, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "yojanactl", version.String())
		},
	}
}
