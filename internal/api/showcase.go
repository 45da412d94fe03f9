package api

import (
	"context"
	"encoding/json"
)

// CompetitionService covers /edu/competition.
type CompetitionService struct{ crud }

func newCompetitionService(r Requester) *CompetitionService {
	return &CompetitionService{crud{r: r, base: "/edu/competition"}}
}

func (s *CompetitionService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/competition/miniprogram", params)
}

func (s *CompetitionService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/competition/detail/"+seg(id), nil)
}

func (s *CompetitionService) CategoriesMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/competition/categories/map", nil)
}

// ShowcaseService covers /edu/showcase.
type ShowcaseService struct{ crud }

func newShowcaseService(r Requester) *ShowcaseService {
	return &ShowcaseService{crud{r: r, base: "/edu/showcase"}}
}

func (s *ShowcaseService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/showcase/miniprogram", params)
}

func (s *ShowcaseService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/showcase/detail/"+seg(id), nil)
}

func (s *ShowcaseService) TypesMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/showcase/types/map", nil)
}
