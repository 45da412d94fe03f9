package api

import (
	"context"
	"encoding/json"
)

// OrganizationService covers /edu/organization.
type OrganizationService struct{ r Requester }

func (s *OrganizationService) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/organization/miniprogram", params)
}

func (s *OrganizationService) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/organization/detail/"+seg(id), nil)
}

// Carousel lists organizations featured on the home page.
func (s *OrganizationService) Carousel(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/organization/carousel", params)
}

func (s *OrganizationService) Apply(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/apply", body)
}

func (s *OrganizationService) ApproveApplication(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/approveApplication", body)
}

func (s *OrganizationService) Quit(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/quit", body)
}

func (s *OrganizationService) RemoveMember(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/removeMember", body)
}

func (s *OrganizationService) SetAdmin(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/setAdmin", body)
}

func (s *OrganizationService) RemoveAdmin(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/removeAdmin", body)
}

func (s *OrganizationService) TransferPresident(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/transferPresident", body)
}

func (s *OrganizationService) UpdateInfo(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization/updateInfo", body)
}

func (s *OrganizationService) Members(ctx context.Context, organizationID string, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/organization/members/"+seg(organizationID), params)
}

func (s *OrganizationService) Applications(ctx context.Context, organizationID string, params Params) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/organization/applications/"+seg(organizationID), params)
}

func (s *OrganizationService) LevelsMap(ctx context.Context) (json.RawMessage, error) {
	return s.r.Get(ctx, "/edu/organization/levels/map", nil)
}

func (s *OrganizationService) Create(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Post(ctx, "/edu/organization", body)
}

func (s *OrganizationService) Update(ctx context.Context, body any) (json.RawMessage, error) {
	return s.r.Put(ctx, "/edu/organization", body)
}

func (s *OrganizationService) Delete(ctx context.Context, organizationIDs ...string) (json.RawMessage, error) {
	return s.r.Delete(ctx, "/edu/organization/"+ids(organizationIDs), nil)
}
