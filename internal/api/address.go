package api

import (
	"context"
	"encoding/json"
)

// AddressService covers delivery addresses (/api/address).
type AddressService struct{ r Requester }

func (s *AddressService) List(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/address/list", nil)
}

func (s *AddressService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/address/"+seg(id), nil)
}

func (s *AddressService) Add(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/address", body)
}

func (s *AddressService) Update(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/address/"+seg(id), body)
}

func (s *AddressService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/address/"+seg(id), nil)
}

func (s *AddressService) SetDefault(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Put(ctx, "/api/address/"+seg(id)+"/default", nil)
}

func (s *AddressService) Default(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/address/default", nil)
}
