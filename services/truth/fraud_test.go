package truth

import (
	"context"
	"testing"
	"time"

	"travony/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedObservations(t *testing.T, repo *memObservationRepo, n int, userID, providerID, city string) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.CreateObservation(context.Background(), &models.Observation{
			UserID:     userID,
			ProviderID: providerID,
			City:       city,
		})
		require.NoError(t, err)
	}
}

func TestFraudGateCleanSubmissionPasses(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	result, err := gate.Validate(context.Background(), "user-1", "prov-1", "nairobi", nil)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Flags)
	assert.Equal(t, 1.0, result.TrustWeight)
}

func TestFraudGateInfluenceCap(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	// 10 context observations, 2 of them by the submitting user: the
	// pending submission would make the user's share (2+1)/(10+1) = 27%.
	seedObservations(t, repo, 2, "heavy-user", "prov-1", "nairobi")
	seedObservations(t, repo, 8, "other-user", "prov-1", "nairobi")
	// Backdate so the rate and duplicate windows stay quiet.
	backdateAll(repo)

	result, err := gate.Validate(context.Background(), "heavy-user", "prov-1", "nairobi", nil)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Flags, models.FlagInfluenceCapExceeded)
	assert.InDelta(t, 0.3, result.TrustWeight, 1e-9)
}

func TestFraudGateInfluenceCapSkippedBelowContextMinimum(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	// 4 of 9 observations are the user's: a huge share, but the context is
	// still too small for the cap to apply.
	seedObservations(t, repo, 4, "heavy-user", "prov-1", "nairobi")
	seedObservations(t, repo, 5, "other-user", "prov-1", "nairobi")
	backdateAll(repo)

	result, err := gate.Validate(context.Background(), "heavy-user", "prov-1", "nairobi", nil)
	require.NoError(t, err)
	assert.NotContains(t, result.Flags, models.FlagInfluenceCapExceeded)
}

func TestFraudGateSubmissionRate(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	// 20 fresh observations inside the trailing 24h window, spread over
	// providers so the duplicate check stays quiet.
	for i := 0; i < 20; i++ {
		_, err := repo.CreateObservation(context.Background(), &models.Observation{
			UserID:     "busy-user",
			ProviderID: "prov-other",
			City:       "mombasa",
		})
		require.NoError(t, err)
	}

	result, err := gate.Validate(context.Background(), "busy-user", "prov-1", "nairobi", nil)
	require.NoError(t, err)
	assert.Contains(t, result.Flags, models.FlagSuspiciousRate)
	assert.InDelta(t, 0.5, result.TrustWeight, 1e-9)
}

func TestFraudGateGPSPenaltyAppliedOnce(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	// Stationary and too short: two GPS flags, one 0.4 multiplier.
	trace := []models.GPSPoint{
		{Latitude: 1, Longitude: 1, Timestamp: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
		{Latitude: 1, Longitude: 1, Timestamp: time.Date(2025, 6, 1, 8, 1, 0, 0, time.UTC)},
		{Latitude: 1, Longitude: 1, Timestamp: time.Date(2025, 6, 1, 8, 2, 0, 0, time.UTC)},
		{Latitude: 1, Longitude: 1, Timestamp: time.Date(2025, 6, 1, 8, 3, 0, 0, time.UTC)},
	}

	result, err := gate.Validate(context.Background(), "user-1", "prov-1", "nairobi", trace)
	require.NoError(t, err)
	assert.Contains(t, result.Flags, models.FlagInsufficientGPSPoints)
	assert.Contains(t, result.Flags, models.FlagStationaryTrace)
	assert.InDelta(t, 0.4, result.TrustWeight, 1e-9)
}

func TestFraudGateDuplicateZeroesWeight(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	// A submission for the same provider moments ago.
	_, err := repo.CreateObservation(context.Background(), &models.Observation{
		UserID:     "user-1",
		ProviderID: "prov-1",
		City:       "nairobi",
	})
	require.NoError(t, err)

	result, err := gate.Validate(context.Background(), "user-1", "prov-1", "nairobi", nil)
	require.NoError(t, err)
	assert.Contains(t, result.Flags, models.FlagDuplicateSubmission)
	assert.Equal(t, 0.0, result.TrustWeight)
	assert.False(t, result.Passed)
}

func TestFraudGateOldSubmissionIsNotDuplicate(t *testing.T) {
	repo := newMemObservationRepo()
	gate := &FraudGate{Observations: repo}

	_, err := repo.CreateObservation(context.Background(), &models.Observation{
		UserID:     "user-1",
		ProviderID: "prov-1",
		City:       "nairobi",
	})
	require.NoError(t, err)

	// Just outside the 10-minute duplicate window.
	repo.mu.Lock()
	repo.observations[0].CreatedAt = time.Now().Add(-11 * time.Minute)
	repo.mu.Unlock()

	result, err := gate.Validate(context.Background(), "user-1", "prov-1", "nairobi", nil)
	require.NoError(t, err)
	assert.NotContains(t, result.Flags, models.FlagDuplicateSubmission)
	assert.True(t, result.Passed)
}

// backdateAll pushes every stored observation outside the 24h rate window
// and the duplicate window.
func backdateAll(repo *memObservationRepo) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	// A fixed date comfortably before both the real clock and the frozen
	// engine clock (2025-06-15) used in engine_test.go, so the rate and
	// duplicate windows stay quiet regardless of when the tests run.
	old := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, obs := range repo.observations {
		obs.CreatedAt = old
	}
}
