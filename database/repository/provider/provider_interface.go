package providerRepo

import (
	"context"

	"travony/models"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByName retrieves a provider by its display name (case-insensitive).
	GetByName(ctx context.Context, name string) (*models.Provider, error)
	// GetOrCreateByName returns the provider with the given name, creating
	// it on first reference.
	GetOrCreateByName(ctx context.Context, name string) (*models.Provider, error)
	// GetAll retrieves all active providers.
	GetAll(ctx context.Context) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(ctx context.Context, provider *models.Provider) error
	// Seed inserts the well-known provider brands if missing.
	Seed(ctx context.Context) error
}
