package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"hunterprice/internal/domain"
)

// SearchByImage uploads a photo and returns the products that look like it.
// The upload is sent once.
func (c *Client) SearchByImage(ctx context.Context, filename string, image io.Reader) ([]domain.ProductSummary, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("upload-image: building form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("upload-image: reading image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("upload-image: building form: %w", err)
	}

	body, err := c.do(ctx, "upload-image", http.MethodPost, c.endpoint("upload-image"), buf.Bytes(), form.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var dtos []productDTO
	if err := decode("upload-image", body, &dtos); err != nil {
		return nil, err
	}
	return toSummaries(dtos), nil
}
