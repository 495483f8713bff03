package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"saglikhep/pkg/domain"
)

const defaultMaxUploadBytes = 5 << 20

var defaultExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// UploadFile is one in-memory file to send.
type UploadFile struct {
	Name string
	Data []byte
}

type uploadEnvelope struct {
	File domain.UploadResult `json:"file"`
}

type uploadListEnvelope struct {
	Files []domain.UploadResult `json:"files"`
}

// UploadSingle validates and uploads one image, returning its served URL.
// Validation runs client-side before any network call.
func (c *Client) UploadSingle(ctx context.Context, file UploadFile) (domain.UploadResult, error) {
	if err := c.validateUpload(file); err != nil {
		return domain.UploadResult{}, err
	}
	var resp uploadEnvelope
	if err := c.do(ctx, http.MethodPost, "/upload/single", nil, multipartBody([]UploadFile{file}), &resp); err != nil {
		return domain.UploadResult{}, err
	}
	return resp.File, nil
}

// UploadMultiple validates and uploads a batch of images.
func (c *Client) UploadMultiple(ctx context.Context, files []UploadFile) ([]domain.UploadResult, error) {
	for _, f := range files {
		if err := c.validateUpload(f); err != nil {
			return nil, err
		}
	}
	var resp uploadListEnvelope
	if err := c.do(ctx, http.MethodPost, "/upload/multiple", nil, multipartBody(files), &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// DeleteUpload removes a previously uploaded asset by file name.
func (c *Client) DeleteUpload(ctx context.Context, fileName string) error {
	return c.doJSON(ctx, http.MethodDelete, "/upload/"+url.PathEscape(fileName), nil, nil, nil)
}

// normalizeExtensions brings configured extensions to the comparable
// form validateUpload matches against: lowercase with a leading dot,
// so "JPG" and "jpg" in a config both mean ".jpg".
func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func (c *Client) validateUpload(file UploadFile) error {
	if int64(len(file.Data)) > c.maxUploadBytes {
		return fmt.Errorf("dosya çok büyük: %s (en fazla %d bayt)", file.Name, c.maxUploadBytes)
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	for _, allowed := range c.allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("desteklenmeyen dosya türü: %s", file.Name)
}

// multipartBody builds the form body from scratch on every call so a
// 401 replay resends the full content.
func multipartBody(files []UploadFile) bodyFunc {
	return func() (io.Reader, string, error) {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for _, f := range files {
			part, err := writer.CreateFormFile("image", filepath.Base(f.Name))
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(f.Data); err != nil {
				return nil, "", err
			}
		}
		if err := writer.Close(); err != nil {
			return nil, "", err
		}
		return buf, writer.FormDataContentType(), nil
	}
}
