package consentRepo

import (
	"context"

	"travony/models"
)

// ConsentRepository defines data access for per-user consent records.
type ConsentRepository interface {
	// Upsert stores the consent record, replacing any prior one for the user.
	Upsert(ctx context.Context, record *models.ConsentRecord) error
	// GetByUserID returns the user's consent record, or nil if none exists.
	GetByUserID(ctx context.Context, userID string) (*models.ConsentRecord, error)
	// Revoke flips the record status to revoked and stamps the revocation
	// time. The record itself is kept.
	Revoke(ctx context.Context, userID string) error
}
