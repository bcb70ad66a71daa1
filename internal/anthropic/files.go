package anthropic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is a Files API object.
type File struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type,omitempty"`
}

// UploadFile uploads r under the given filename and returns the stored
// file, whose ID is what container_upload blocks reference.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading %s for upload: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/files", &buf, []string{BetaFilesAPI})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var file File
	if err := c.doJSON(req, &file); err != nil {
		return nil, err
	}
	return &file, nil
}
