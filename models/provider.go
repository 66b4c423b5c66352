package models

import "time"

// Provider is a ride-hailing brand being rated by the truth engine.
// Providers are seeded or created on first reference by name and are never
// deleted while observations reference them.
type Provider struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	DeepLinkScheme string    `bson:"deepLinkScheme" json:"deepLinkScheme,omitempty"` // e.g. "uber://"
	AndroidPackage string    `bson:"androidPackage" json:"androidPackage,omitempty"`
	IOSBundleID    string    `bson:"iosBundleId" json:"iosBundleId,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
