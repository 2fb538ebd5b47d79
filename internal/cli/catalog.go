package cli

import (
	"github.com/spf13/cobra"

	"github.com/yojanadost/yojana/internal/render"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
)

func (o *options) catalog(cmd *cobra.Command) (*cataloguc.Service, error) {
	repo, err := o.loadDataset(cmd.Context())
	if err != nil {
		return nil, err
	}
	return cataloguc.New(repo), nil
}

func newSchemeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scheme <id>",
		Short: "Show one scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.catalog(cmd)
			if err != nil {
				return err
			}
			s, err := svc.Scheme(args[0])
			if err != nil {
				return err
			}
			render.New(cmd.OutOrStdout()).Scheme(s)
			return nil
		},
	}
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List scheme categories with counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.catalog(cmd)
			if err != nil {
				return err
			}
			items, err := svc.Categories()
			if err != nil {
				return err
			}
			return render.New(cmd.OutOrStdout()).Categories(items)
		},
	}
}

func newStatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List states that have schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.catalog(cmd)
			if err != nil {
				return err
			}
			items, err := svc.Regions()
			if err != nil {
				return err
			}
			return render.New(cmd.OutOrStdout()).Regions(items)
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.catalog(cmd)
			if err != nil {
				return err
			}
			st, err := svc.Stats()
			if err != nil {
				return err
			}
			return render.New(cmd.OutOrStdout()).Stats(st)
		},
	}
}
