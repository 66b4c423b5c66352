package truth

import (
	"context"
	"fmt"

	"travony/models"

	"go.uber.org/zap"
)

// GrantConsent upserts a granted consent record for the user. Granting
// again overwrites the capability set and clears any prior revocation.
func (e *DefaultTruthEngine) GrantConsent(ctx context.Context, userID string, caps models.ConsentCapabilities) error {
	if userID == "" {
		return ValidationError{Field: "userId", Reason: "must not be empty"}
	}
	record := &models.ConsentRecord{
		UserID:       userID,
		Capabilities: caps,
		Status:       models.ConsentGranted,
		GrantedAt:    e.now(),
	}
	if err := e.Consents.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to grant consent: %w", err)
	}
	zap.L().Info("consent granted", zap.String("userId", userID))
	return nil
}

// CheckConsent reports whether the user currently holds a granted record.
func (e *DefaultTruthEngine) CheckConsent(ctx context.Context, userID string) (bool, error) {
	record, err := e.Consents.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check consent: %w", err)
	}
	return record != nil && record.Status == models.ConsentGranted, nil
}

// RevokeConsent flips the user's record to revoked and stamps the
// revocation time. Data already collected stays in place; only
// DeleteUserData removes it.
func (e *DefaultTruthEngine) RevokeConsent(ctx context.Context, userID string) error {
	if err := e.Consents.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke consent: %w", err)
	}
	zap.L().Info("consent revoked", zap.String("userId", userID))
	return nil
}

// DeleteUserData removes all scores and observations of the user plus the
// consent record itself, atomically. Aggregation rows touching the removed
// observations self-correct on their next recomputation.
func (e *DefaultTruthEngine) DeleteUserData(ctx context.Context, userID string) (int64, error) {
	deleted, err := e.Observations.PurgeUserData(ctx, userID)
	if err != nil {
		return 0, err
	}
	zap.L().Info("user data deleted",
		zap.String("userId", userID),
		zap.Int64("observations", deleted),
	)
	return deleted, nil
}
