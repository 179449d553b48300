package cms

import (
	"context"
	"strings"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/models"
)

// GenerateUploadURL issues a one-time direct upload target for staff.
func (s *Service) GenerateUploadURL(ctx context.Context, contentType string) (*models.UploadTicket, error) {
	p, err := access.Authorize(ctx, access.OpGenerateUploadURL)
	if err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, upstream("file storage is not configured", nil)
	}
	ticket, err := s.files.PresignUpload(ctx, strings.TrimSpace(contentType))
	if err != nil {
		return nil, upstream("could not create upload url", err)
	}
	s.log.Info("upload url issued", "storageId", ticket.StorageID, "by", p.Email)
	return ticket, nil
}

// StorageURL resolves a storage id to a short-lived download URL. Any
// failure reads as "no file".
func (s *Service) StorageURL(ctx context.Context, storageID string) (string, bool) {
	if s.files == nil || storageID == "" {
		return "", false
	}
	url, err := s.files.ResolveURL(ctx, storageID)
	if err != nil {
		s.log.Debug("storage id not resolved", "storageId", storageID, "error", err)
		return "", false
	}
	return url, true
}
