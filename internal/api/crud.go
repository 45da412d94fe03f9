package api

import (
	"context"
	"encoding/json"
)

// crud is the admin surface shared by resources rooted at one base path:
// GET base/list, GET base/{id}, POST base, PUT base, DELETE base/{ids}.
type crud struct {
	r    Requester
	base string
}

// AdminList is the paginated back-office listing.
func (c crud) AdminList(ctx context.Context, params Params) (json.RawMessage, error) {
	return c.r.Get(ctx, c.base+"/list", params)
}

// AdminDetail fetches one record by primary key.
func (c crud) AdminDetail(ctx context.Context, id string) (json.RawMessage, error) {
	return c.r.Get(ctx, c.base+"/"+seg(id), nil)
}

func (c crud) Create(ctx context.Context, body any) (json.RawMessage, error) {
	return c.r.Post(ctx, c.base, body)
}

func (c crud) Update(ctx context.Context, body any) (json.RawMessage, error) {
	return c.r.Put(ctx, c.base, body)
}

// Delete removes one or more records; ids are joined with commas.
func (c crud) Delete(ctx context.Context, id ...string) (json.RawMessage, error) {
	return c.r.Delete(ctx, c.base+"/"+ids(id), nil)
}

// directory is a crud resource that also has a public mini-program listing.
type directory struct{ crud }

func newDirectory(r Requester, base string) directory {
	return directory{crud{r: r, base: base}}
}

// List is the public listing used by the mini-program pages.
func (d directory) List(ctx context.Context, params Params) (json.RawMessage, error) {
	return d.r.Get(ctx, d.base+"/miniprogram", params)
}
