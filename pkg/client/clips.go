package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type ClipService struct {
	client *Client
}

func (c *Client) Clips() *ClipService {
	return &ClipService{client: c}
}

type ShareResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// Share uploads a local clip file and returns its hosted ID and public URL.
// The file is streamed, not buffered in memory.
func (s *ClipService) Share(ctx context.Context, clipPath string) (*ShareResponse, error) {
	file, err := os.Open(clipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("clip", filepath.Base(clipPath))
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	var resp ShareResponse
	if err := s.client.doRaw(ctx, http.MethodPost, "clips", pr, writer.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	if resp.URL == "" && resp.ID != uuid.Nil {
		resp.URL = s.PublicURL(resp.ID)
	}
	return &resp, nil
}

func (s *ClipService) Delete(ctx context.Context, id uuid.UUID) error {
	endpoint := fmt.Sprintf("clips/%s", url.PathEscape(id.String()))
	return s.client.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// PublicURL is the shareable browser URL for a hosted clip.
func (s *ClipService) PublicURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/clip/%s", s.client.BaseURL(), id)
}
