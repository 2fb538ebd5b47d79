package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/render"
	pipelineuc "github.com/yojanadost/yojana/internal/usecase/pipeline"
)

func newQueryCmd(opts *options) *cobra.Command {
	var (
		search   string
		category string
		region   string
		sortKey  string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search, filter, sort and page through schemes",
		Example: `  yojanactl query --search farmer
  yojanactl query --category Education --sort recent --page 2
  yojanactl query --state odisha --page-size 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := query.ParseSortKey(sortKey)
			if err != nil {
				return err
			}

			repo, err := opts.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			svcOpts := []pipelineuc.Option{}
			if opts.cfg != nil {
				svcOpts = append(svcOpts,
					pipelineuc.WithPageSize(opts.cfg.Query.DefaultPageSize),
					pipelineuc.WithMaxPageSize(opts.cfg.Query.MaxPageSize),
				)
			}
			svc := pipelineuc.NewService(repo, svcOpts...)

			size := pageSize
			if size <= 0 {
				size = svc.DefaultState().PageSize()
			}
			result, effective, err := svc.Query(query.NewState(search, category, region, key, page, size))
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			return render.New(cmd.OutOrStdout()).Page(result, effective)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text search term")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category filter (e.g. Education)")
	cmd.Flags().StringVar(&region, "state", "", "state filter (e.g. odisha, central)")
	cmd.Flags().StringVar(&sortKey, "sort", string(query.NameAsc), "sort key: name, name-desc, category, recent")
	cmd.Flags().IntVarP(&page, "page", "p", query.FirstPage, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page (default from config)")
	return cmd
}
