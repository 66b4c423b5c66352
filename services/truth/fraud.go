package truth

import (
	"context"
	"fmt"
	"time"

	"travony/database/repository"
	"travony/models"
)

// Fraud gate thresholds and penalties.
const (
	influenceMinContextSize = 10
	influenceMaxShare       = 0.15
	influencePenalty        = 0.3

	rateWindow  = 24 * time.Hour
	rateMaxObs  = 20
	ratePenalty = 0.5

	gpsPenalty = 0.4

	duplicateWindow = 10 * time.Minute
)

// FraudGate validates submissions against influence-cap, rate-limit, GPS
// plausibility and duplicate rules. Every check multiplies the trust
// weight instead of rejecting, except duplicate detection which zeroes it.
type FraudGate struct {
	Observations repository.ObservationRepository
	Now          func() time.Time
}

func (g *FraudGate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Validate runs all four checks for a pending submission. Flags are
// informational; Passed is true only when none were raised.
func (g *FraudGate) Validate(ctx context.Context, userID, providerID, city string, trace []models.GPSPoint) (models.FraudResult, error) {
	result := models.FraudResult{TrustWeight: 1.0}
	now := g.now()

	// Influence cap: once a (provider, city) context is established, one
	// user may not represent more than 15% of its observations.
	total, err := g.Observations.CountByProviderCity(ctx, providerID, city)
	if err != nil {
		return result, fmt.Errorf("influence cap check failed: %w", err)
	}
	if total >= influenceMinContextSize {
		userCount, err := g.Observations.CountByUserProviderCity(ctx, userID, providerID, city)
		if err != nil {
			return result, fmt.Errorf("influence cap check failed: %w", err)
		}
		share := float64(userCount+1) / float64(total+1)
		if share > influenceMaxShare {
			result.Flags = append(result.Flags, models.FlagInfluenceCapExceeded)
			result.TrustWeight *= influencePenalty
		}
	}

	// Submission rate over the trailing 24 hours.
	recent, err := g.Observations.CountByUserSince(ctx, userID, now.Add(-rateWindow))
	if err != nil {
		return result, fmt.Errorf("submission rate check failed: %w", err)
	}
	if recent >= rateMaxObs {
		result.Flags = append(result.Flags, models.FlagSuspiciousRate)
		result.TrustWeight *= ratePenalty
	}

	// GPS plausibility, only when a trace was supplied.
	if len(trace) > 0 {
		if gpsFlags := tracePlausibilityFlags(trace); len(gpsFlags) > 0 {
			result.Flags = append(result.Flags, gpsFlags...)
			result.TrustWeight *= gpsPenalty
		}
	}

	// Duplicate suppression: hard reject, weight forced to zero.
	dup, err := g.Observations.HasRecentSubmission(ctx, userID, providerID, now.Add(-duplicateWindow))
	if err != nil {
		return result, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup {
		result.Flags = append(result.Flags, models.FlagDuplicateSubmission)
		result.TrustWeight = 0
	}

	result.Passed = len(result.Flags) == 0
	return result, nil
}
