package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/RegularsYr7/IntelligentDataAcademy-mini/internal/i18n"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/logger"
	"github.com/RegularsYr7/IntelligentDataAcademy-mini/pkg/metrics"
)

// Upload posts the file at filePath as multipart form data along with form.
// The field name defaults to "file" and can be changed with WithFieldName.
func (c *Client) Upload(ctx context.Context, url, filePath string, form map[string]string, opts ...CallOption) (json.RawMessage, error) {
	cc := buildCallConfig(opts)
	target := resolveURL(c.baseURL, url)

	if filePath == "" {
		c.log.Error(ctx, "upload without file path", logger.String("url", target))
		c.metrics.RecordUpload(metrics.OutcomeInvalid, 0)
		return nil, &Error{Kind: KindInvalid, Message: c.tr.Sprintf(i18n.EmptyFilePath), Err: ErrEmptyFilePath}
	}

	field := c.uploadField
	if cc.fieldName != "" {
		field = cc.fieldName
	}
	body, contentType, size, err := buildMultipart(filePath, field, form)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Message: c.tr.Sprintf(i18n.UploadFailed), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
	}
	if err := c.applyHeaders(ctx, req, cc, false); err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	c.log.Debug(ctx, "[UPLOAD] "+target, logger.String("file", filePath), logger.String("field", field), logger.Int64("bytes", size))

	status, respBody, err := c.roundTrip(req)
	if err != nil {
		c.metrics.RecordUpload(metrics.OutcomeNetwork, 0)
		return nil, c.networkError(ctx, err, cc, c.tr.Sprintf(i18n.UploadFailed))
	}

	env, derr := decodeEnvelope(respBody)
	if derr != nil {
		if status != http.StatusOK {
			c.metrics.RecordUpload(metrics.OutcomeTransport, 0)
			return nil, c.transportError(ctx, status, cc)
		}
		c.metrics.RecordUpload(metrics.OutcomeDecode, 0)
		c.log.Warn(ctx, "undecodable upload response", logger.Error(derr))
		return nil, &Error{Kind: KindInvalid, Code: status, Message: c.tr.Sprintf(i18n.UploadFailed), Err: derr}
	}

	if code := env.code(); code != successCode {
		c.metrics.RecordUpload(metrics.OutcomeBusiness, 0)
		msg := env.text("msg")
		if msg == "" {
			msg = env.text("message")
		}
		return nil, c.businessError(ctx, code, msg, respBody, cc, i18n.UploadFailed)
	}

	c.metrics.RecordUpload(metrics.OutcomeOK, size)
	if cc.raw {
		return respBody, nil
	}
	if _, ok := env["data"]; !ok {
		env.prefixURL(c.baseURL)
	}
	return env.payload("code", "msg", "message")
}

// buildMultipart assembles the form in memory and returns it with its content type.
func buildMultipart(filePath, field string, form map[string]string) (io.Reader, string, int64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", 0, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range form {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", 0, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile(field, filepath.Base(filePath))
	if err != nil {
		return nil, "", 0, fmt.Errorf("create form file: %w", err)
	}
	n, err := io.Copy(part, f)
	if err != nil {
		return nil, "", 0, fmt.Errorf("copy %s: %w", filePath, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", 0, fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), n, nil
}
