package yojana

import (
	"context"
	"fmt"
	"time"

	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
)

// CatalogService serves the aggregate views: categories, regions and totals.
type CatalogService struct {
	svc catalogUseCase
	obs *observer
}

// Categories returns every category present in the dataset, by title.
func (s *CatalogService) Categories(ctx context.Context) (_ []Category, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.categories", start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	summaries, err := s.svc.Categories()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]Category, len(summaries))
	for i, c := range summaries {
		out[i] = fromInternalCategory(c)
	}
	return out, nil
}

// Regions returns every known region present in the dataset.
func (s *CatalogService) Regions(ctx context.Context) (_ []Region, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.regions", start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	summaries, err := s.svc.Regions()
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	out := make([]Region, len(summaries))
	for i, r := range summaries {
		out[i] = Region{
			Key:         r.Key,
			Name:        r.Info.Name,
			Code:        r.Info.Code,
			Description: r.Info.Description,
			Count:       r.Count,
			Categories:  r.Categories,
		}
	}
	return out, nil
}

// Stats returns dataset-wide totals.
func (s *CatalogService) Stats(ctx context.Context) (_ Stats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.stats", start, err) }()

	if err = ctx.Err(); err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	st, err := s.svc.Stats()
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return Stats(st), nil
}

func fromInternalCategory(c cataloguc.CategorySummary) Category {
	return Category{
		Key:         c.Key,
		Title:       c.Info.Title,
		Description: c.Info.Description,
		Color:       c.Info.Color,
		Count:       c.Count,
		Central:     c.Central,
		State:       c.State,
		Tags:        c.Tags,
	}
}
