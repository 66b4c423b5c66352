package providerRepo

import (
	"context"
	"time"

	"travony/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Well-known ride-hailing brands with their deep-link metadata. Any other
// provider is created empty on first reference by name.
var seedProviders = []models.Provider{
	{Name: "Uber", DeepLinkScheme: "uber://", AndroidPackage: "com.ubercab", IOSBundleID: "com.ubercab.UberClient"},
	{Name: "Bolt", DeepLinkScheme: "bolt://", AndroidPackage: "ee.mtakso.client", IOSBundleID: "ee.mtakso.client"},
	{Name: "Lyft", DeepLinkScheme: "lyft://", AndroidPackage: "me.lyft.android", IOSBundleID: "com.zimride.instant"},
	{Name: "inDrive", DeepLinkScheme: "indriver://", AndroidPackage: "sinet.startup.inDriver", IOSBundleID: "sinet.startup.inDriver"},
	{Name: "Yango", DeepLinkScheme: "yango://", AndroidPackage: "com.yandex.yango", IOSBundleID: "ru.yandex.yango"},
	{Name: "Little", DeepLinkScheme: "littlecab://", AndroidPackage: "com.craftsilicon.littlecabrider", IOSBundleID: "com.craftsilicon.little"},
}

// Seed inserts the well-known providers that do not exist yet. Existing
// records are left untouched.
func (r *MongoProviderRepo) Seed(ctx context.Context) error {
	logger := zap.L()
	for _, p := range seedProviders {
		existing, err := r.GetByName(ctx, p.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		p.ID = uuid.New().String()
		p.Active = true
		p.CreatedAt = time.Now()
		if err := r.Create(ctx, &p); err != nil {
			return err
		}
		logger.Info("seeded provider", zap.String("name", p.Name))
	}
	return nil
}
