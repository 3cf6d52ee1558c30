package tray

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"agriboost-backend/internal/shared/storage/object"
)

// ErrInvalidInput indicates a missing or unusable upload.
var ErrInvalidInput = errors.New("invalid input")

// Service saves uploads to object storage and records them in the tray.
type Service struct {
	Store object.ObjectStore
	Tray  *Store
}

// PutSoilReport stores the file and fills the soil-report slot.
func (s *Service) PutSoilReport(ctx context.Context, ownerID, fileName string, r io.Reader) (FileRef, error) {
	ref, err := s.save(ctx, ownerID, fileName, r)
	if err != nil {
		return FileRef{}, err
	}
	s.Tray.SetSoilReport(ownerID, ref)
	return ref, nil
}

// PutCropImage stores the file and fills the crop-image slot.
func (s *Service) PutCropImage(ctx context.Context, ownerID, fileName string, r io.Reader) (FileRef, error) {
	ref, err := s.save(ctx, ownerID, fileName, r)
	if err != nil {
		return FileRef{}, err
	}
	s.Tray.SetCropImage(ownerID, ref)
	return ref, nil
}

// Current returns the owner's tray.
func (s *Service) Current(ownerID string) Tray {
	return s.Tray.Get(ownerID)
}

func (s *Service) save(ctx context.Context, ownerID, fileName string, r io.Reader) (FileRef, error) {
	if fileName == "" {
		return FileRef{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, ownerID, fileName, r)
	if err != nil {
		return FileRef{}, err
	}

	return FileRef{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		UploadedAt: time.Now().UTC(),
	}, nil
}
