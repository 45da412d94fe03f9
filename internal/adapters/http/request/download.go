package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
)

// Download fetches url into a new temporary file under dir and returns its path.
// An empty dir uses the system temp directory.
func (c *Client) Download(ctx context.Context, url, dir string, opts ...CallOption) (string, error) {
	cc := buildCallConfig(opts)
	target := resolveURL(c.baseURL, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
	}
	if err := c.applyHeaders(ctx, req, cc, false); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.networkError(ctx, err, cc, c.tr.Sprintf(i18n.DownloadFailed))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.RecordTransportError(resp.StatusCode)
		return "", &Error{Kind: KindTransport, Code: resp.StatusCode, Message: c.statusMessage(resp.StatusCode)}
	}

	f, err := os.CreateTemp(dir, "download-*"+path.Ext(req.URL.Path))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", c.networkError(ctx, err, cc, c.tr.Sprintf(i18n.DownloadFailed))
	}

	c.log.Debug(ctx, "[DOWNLOAD] "+target, logger.String("path", f.Name()), logger.Int64("bytes", n))
	return f.Name(), nil
}
