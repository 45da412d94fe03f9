package api

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/adapters/http/request"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
)

// CommonUploadPath is the generic upload endpoint used by profile and post images.
const CommonUploadPath = "/common/upload"

// progressReporter is implemented by request.Client.
type progressReporter interface {
	Notifier() request.Notifier
	Translator() *i18n.Translator
}

// UploadService covers /api/upload and /common/upload.
type UploadService struct {
	r        Requester
	notifier request.Notifier
	tr       *i18n.Translator
}

func newUploadService(r Requester) *UploadService {
	s := &UploadService{r: r, notifier: request.NopNotifier(), tr: i18n.English()}
	if p, ok := r.(progressReporter); ok {
		s.notifier = p.Notifier()
		s.tr = p.Translator()
	}
	return s
}

// Image uploads one image.
func (s *UploadService) Image(ctx context.Context, filePath string) (json.RawMessage, error) {
	return s.r.Upload(ctx, "/api/upload/image", filePath, nil)
}

// Images uploads all files concurrently. Results keep the input order; the
// first failure cancels the rest and is returned.
func (s *UploadService) Images(ctx context.Context, filePaths []string) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(filePaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range filePaths {
		g.Go(func() error {
			res, err := s.Image(gctx, p)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Video uploads under the "video" field.
func (s *UploadService) Video(ctx context.Context, filePath string) (json.RawMessage, error) {
	return s.r.Upload(ctx, "/api/upload/video", filePath, nil, request.WithFieldName("video"))
}

func (s *UploadService) File(ctx context.Context, filePath string) (json.RawMessage, error) {
	return s.r.Upload(ctx, "/api/upload/file", filePath, nil, request.WithFieldName("file"))
}

// CommonOptions tune uploads to the generic endpoint.
type CommonOptions struct {
	// URL defaults to CommonUploadPath.
	URL string
	// Field defaults to "file".
	Field    string
	FormData map[string]string
	// StudentID, when set, is sent so the backend can enforce upload quotas.
	StudentID string
}

// Common uploads one file to the generic endpoint.
func (s *UploadService) Common(ctx context.Context, filePath string, opts CommonOptions) (json.RawMessage, error) {
	target := opts.URL
	if target == "" {
		target = CommonUploadPath
	}
	field := opts.Field
	if field == "" {
		field = request.DefaultField
	}
	form := make(map[string]string, len(opts.FormData)+1)
	for k, v := range opts.FormData {
		form[k] = v
	}
	if opts.StudentID != "" {
		form["studentId"] = opts.StudentID
	}
	return s.r.Upload(ctx, target, filePath, form, request.WithFieldName(field))
}

// CommonMany uploads files one after another, reporting progress through the
// loading indicator. It stops at the first failure.
func (s *UploadService) CommonMany(ctx context.Context, filePaths []string, opts CommonOptions) ([]json.RawMessage, error) {
	total := len(filePaths)
	s.notifier.Loading(ctx, s.tr.Sprintf(i18n.Uploading, 0, total))
	defer s.notifier.HideLoading(ctx)

	results := make([]json.RawMessage, 0, total)
	for i, p := range filePaths {
		s.notifier.Loading(ctx, s.tr.Sprintf(i18n.Uploading, i+1, total))
		res, err := s.Common(ctx, p, opts)
		if err != nil {
			return results, fmt.Errorf("upload %d/%d: %w", i+1, total, err)
		}
		results = append(results, res)
	}
	return results, nil
}
