package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/souqbun/backend/internal/domain/catalog"
	"github.com/souqbun/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// allowedImageTypes is the whitelist of content types accepted for
// product images. SVG is excluded since it can carry scripts.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorage is the slice of object storage the image service needs.
// Implemented by the S3 adapter in the infrastructure layer.
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageService handles the two-step product image flow: the client
// uploads directly to object storage through a presigned URL, then
// registers the uploaded object as a product image.
type ImageService struct {
	productRepo     catalog.ProductRepository
	storage         ObjectStorage
	uploadURLExpiry time.Duration
	logger          *zap.Logger
}

// NewImageService creates a new image service
func NewImageService(
	productRepo catalog.ProductRepository,
	storage ObjectStorage,
	uploadURLExpiry time.Duration,
	logger *zap.Logger,
) *ImageService {
	if uploadURLExpiry <= 0 {
		uploadURLExpiry = 15 * time.Minute
	}
	return &ImageService{
		productRepo:     productRepo,
		storage:         storage,
		uploadURLExpiry: uploadURLExpiry,
		logger:          logger,
	}
}

// GenerateUploadURL returns a presigned PUT URL for a product image.
// Only the owning supplier may request one.
func (s *ImageService) GenerateUploadURL(ctx context.Context, supplierID, productID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if _, err := s.ownedProduct(ctx, supplierID, productID); err != nil {
		return nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !allowedImageTypes[contentType] {
		return nil, shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE",
			"Content type must be one of image/jpeg, image/png, image/gif, image/webp")
	}

	storageKey := fmt.Sprintf("products/%s/images/%s%s",
		productID, uuid.New(), filepath.Ext(req.FileName))

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.uploadURLExpiry)
	if err != nil {
		s.logger.Error("Presigned upload URL generation failed",
			zap.String("product_id", productID.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &UploadURLResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// AttachImage registers an uploaded object as a product image after
// verifying the object actually exists in storage
func (s *ImageService) AttachImage(ctx context.Context, supplierID, productID uuid.UUID, req AttachImageRequest) (*ImageResponse, error) {
	if _, err := s.ownedProduct(ctx, supplierID, productID); err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		s.logger.Error("Storage existence check failed",
			zap.String("storage_key", req.StorageKey), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded object found under this storage key")
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, req.StorageKey, 0)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate image URL")
	}

	image := &catalog.ProductImage{
		ProductID:  productID,
		URL:        url,
		StorageKey: req.StorageKey,
		SortOrder:  req.SortOrder,
		IsPrimary:  req.IsPrimary,
		CreatedAt:  time.Now(),
	}
	if err := s.productRepo.AddImage(ctx, image); err != nil {
		return nil, err
	}

	return &ImageResponse{
		ID:        image.ID,
		URL:       image.URL,
		SortOrder: image.SortOrder,
		IsPrimary: image.IsPrimary,
	}, nil
}

func (s *ImageService) ownedProduct(ctx context.Context, supplierID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SupplierID != supplierID {
		return nil, shared.ErrForbidden
	}
	return product, nil
}
