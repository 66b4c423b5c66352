package truth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"travony/database/repository"
	"travony/models"

	"github.com/google/uuid"
)

// memObservationRepo is an in-memory ObservationRepository for engine
// tests.
type memObservationRepo struct {
	mu           sync.Mutex
	observations []*models.Observation
	scores       map[string]*models.Score // keyed by observation ID
}

func newMemObservationRepo() *memObservationRepo {
	return &memObservationRepo{scores: map[string]*models.Score{}}
}

func (r *memObservationRepo) CreateObservation(_ context.Context, obs *models.Observation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}
	obs.CreatedAt = time.Now()
	clone := *obs
	r.observations = append(r.observations, &clone)
	return obs.ID, nil
}

func (r *memObservationRepo) GetObservationByID(_ context.Context, id string) (*models.Observation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, obs := range r.observations {
		if obs.ID == id {
			clone := *obs
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memObservationRepo) CountByProviderCity(_ context.Context, providerID, city string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, obs := range r.observations {
		if obs.ProviderID == providerID && obs.City == city {
			n++
		}
	}
	return n, nil
}

func (r *memObservationRepo) CountByUserProviderCity(_ context.Context, userID, providerID, city string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, obs := range r.observations {
		if obs.UserID == userID && obs.ProviderID == providerID && obs.City == city {
			n++
		}
	}
	return n, nil
}

func (r *memObservationRepo) CountByUserSince(_ context.Context, userID string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, obs := range r.observations {
		if obs.UserID == userID && obs.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (r *memObservationRepo) HasRecentSubmission(_ context.Context, userID, providerID string, since time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, obs := range r.observations {
		if obs.UserID == userID && obs.ProviderID == providerID && obs.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memObservationRepo) UpsertScore(_ context.Context, score *models.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *score
	r.scores[score.ObservationID] = &clone
	return nil
}

func (r *memObservationRepo) GetScoreByObservationID(_ context.Context, observationID string) (*models.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[observationID]
	if !ok {
		return nil, nil
	}
	clone := *score
	return &clone, nil
}

func (r *memObservationRepo) ListScoresByContext(_ context.Context, filter repository.ScoreFilter) ([]models.Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Score
	for _, score := range r.scores {
		if score.ProviderID != filter.ProviderID || score.City != filter.City {
			continue
		}
		if filter.TimeBlock != "" && score.TimeBlock != filter.TimeBlock {
			continue
		}
		if filter.RouteType != "" && score.RouteType != filter.RouteType {
			continue
		}
		out = append(out, *score)
	}
	return out, nil
}

func (r *memObservationRepo) ListProviderIDsByCity(_ context.Context, city string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]struct{}{}
	for _, score := range r.scores {
		if score.City == city {
			seen[score.ProviderID] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out, nil
}

func (r *memObservationRepo) PurgeUserData(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.Observation
	var deleted int64
	for _, obs := range r.observations {
		if obs.UserID == userID {
			deleted++
			delete(r.scores, obs.ID)
			continue
		}
		kept = append(kept, obs)
	}
	r.observations = kept
	return deleted, nil
}

// memConsentRepo is an in-memory ConsentRepository.
type memConsentRepo struct {
	mu      sync.Mutex
	records map[string]*models.ConsentRecord
}

func newMemConsentRepo() *memConsentRepo {
	return &memConsentRepo{records: map[string]*models.ConsentRecord{}}
}

func (r *memConsentRepo) Upsert(_ context.Context, record *models.ConsentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.UserID] = &clone
	return nil
}

func (r *memConsentRepo) GetByUserID(_ context.Context, userID string) (*models.ConsentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[userID]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (r *memConsentRepo) Revoke(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[userID]
	if !ok {
		return nil
	}
	record.Status = models.ConsentRevoked
	now := time.Now()
	record.RevokedAt = &now
	return nil
}

// memAggregateRepo is an in-memory AggregateRepository.
type memAggregateRepo struct {
	mu   sync.Mutex
	rows map[string]*models.ProviderAggregate
}

func newMemAggregateRepo() *memAggregateRepo {
	return &memAggregateRepo{rows: map[string]*models.ProviderAggregate{}}
}

func aggKey(providerID, city, timeBlock, routeType string) string {
	return strings.Join([]string{providerID, city, timeBlock, routeType}, "|")
}

func (r *memAggregateRepo) Upsert(_ context.Context, agg *models.ProviderAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *agg
	r.rows[aggKey(agg.ProviderID, agg.City, agg.TimeBlock, agg.RouteType)] = &clone
	return nil
}

func (r *memAggregateRepo) Delete(_ context.Context, providerID, city, timeBlock, routeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, aggKey(providerID, city, timeBlock, routeType))
	return nil
}

func (r *memAggregateRepo) GetByContext(_ context.Context, city, timeBlock, routeType string) ([]models.ProviderAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ProviderAggregate
	for _, agg := range r.rows {
		if agg.City == city && agg.TimeBlock == timeBlock && agg.RouteType == routeType {
			out = append(out, *agg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvgTotal > out[j].AvgTotal })
	return out, nil
}

// memProviderRepo is an in-memory ProviderRepository.
type memProviderRepo struct {
	mu        sync.Mutex
	providers []*models.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{}
}

func (r *memProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memProviderRepo) GetByName(_ context.Context, name string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if strings.EqualFold(p.Name, name) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memProviderRepo) GetOrCreateByName(ctx context.Context, name string) (*models.Provider, error) {
	if p, err := r.GetByName(ctx, name); err != nil || p != nil {
		return p, err
	}
	p := &models.Provider{ID: uuid.New().String(), Name: strings.TrimSpace(name), Active: true}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
	clone := *p
	return &clone, nil
}

func (r *memProviderRepo) GetAll(_ context.Context) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *provider
	r.providers = append(r.providers, &clone)
	return nil
}

func (r *memProviderRepo) Update(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.providers {
		if p.ID == provider.ID {
			clone := *provider
			r.providers[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *memProviderRepo) Seed(_ context.Context) error { return nil }

// newTestEngine wires a DefaultTruthEngine over fresh in-memory
// repositories with a frozen clock.
func newTestEngine(now time.Time) (*DefaultTruthEngine, *memObservationRepo, *memConsentRepo, *memAggregateRepo, *memProviderRepo) {
	obsRepo := newMemObservationRepo()
	consentRepo := newMemConsentRepo()
	aggRepo := newMemAggregateRepo()
	provRepo := newMemProviderRepo()
	engine := &DefaultTruthEngine{
		Providers:    provRepo,
		Observations: obsRepo,
		Consents:     consentRepo,
		Aggregates:   aggRepo,
		Now:          func() time.Time { return now },
	}
	return engine, obsRepo, consentRepo, aggRepo, provRepo
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
