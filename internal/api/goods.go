package api

import (
	"context"
	"encoding/json"
)

// GoodsService covers the second-hand marketplace listings (/api/goods).
type GoodsService struct{ r Requester }

func (s *GoodsService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/goods/list", params)
}

func (s *GoodsService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/goods/"+seg(id), nil)
}

func (s *GoodsService) Publish(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/goods", body)
}

func (s *GoodsService) Update(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/goods/"+seg(id), body)
}

func (s *GoodsService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/goods/"+seg(id), nil)
}

// Mine lists goods published by the current user.
func (s *GoodsService) Mine(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/goods/my", params)
}

func (s *GoodsService) Collect(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/goods/"+seg(id)+"/collect", nil)
}

func (s *GoodsService) Uncollect(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/goods/"+seg(id)+"/collect", nil)
}

func (s *GoodsService) Collected(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/goods/collect", params)
}

func (s *GoodsService) Search(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/goods/search", params)
}

func (s *GoodsService) OnSale(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/goods/"+seg(id)+"/onsale", nil)
}

func (s *GoodsService) OffSale(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/goods/"+seg(id)+"/offsale", nil)
}
