package api

import (
	"context"
	"encoding/json"
)

// OrderService covers marketplace orders (/api/order).
type OrderService struct{ r Requester }

func (s *OrderService) Create(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/api/order", body)
}

func (s *OrderService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/order/"+seg(id), nil)
}

func (s *OrderService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/api/order/list", params)
}

func (s *OrderService) Pay(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, s.action(id, "pay"), body)
}

func (s *OrderService) Cancel(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, s.action(id, "cancel"), body)
}

// Confirm marks the goods as received.
func (s *OrderService) Confirm(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Post(ctx, s.action(id, "confirm"), nil)
}

func (s *OrderService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/api/order/"+seg(id), nil)
}

func (s *OrderService) Refund(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, s.action(id, "refund"), body)
}

func (s *OrderService) Review(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, s.action(id, "review"), body)
}

func (s *OrderService) action(id, verb string) string {
	return "/api/order/" + seg(id) + "/" + verb
}
