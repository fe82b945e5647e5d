package client

import (
	"context"
	"fmt"
	"io"
	"log"
	"storefront-api/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type MediaUpload struct {
	URL      string
	PublicID string
}

type MediaClient interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*MediaUpload, error)
}

type cloudinaryClientImpl struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryClient(cfg *config.Cloudinary) MediaClient {
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		log.Fatal("failed to init cloudinary:", err)
	}
	return &cloudinaryClientImpl{
		cld:    cld,
		folder: cfg.Folder,
	}
}

func (c *cloudinaryClientImpl) Upload(ctx context.Context, file io.Reader, filename string) (*MediaUpload, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}

	return &MediaUpload{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}
