package models

import "time"

// Consent status values.
const (
	ConsentGranted = "granted"
	ConsentRevoked = "revoked"
)

// ConsentCapabilities are the per-capability grants a user can give for
// signal collection.
type ConsentCapabilities struct {
	ScreenshotCapture    bool `bson:"screenshotCapture" json:"screenshotCapture"`
	NotificationParsing  bool `bson:"notificationParsing" json:"notificationParsing"`
	GPSTracking          bool `bson:"gpsTracking" json:"gpsTracking"`
	PostRideConfirmation bool `bson:"postRideConfirmation" json:"postRideConfirmation"`
}

// ConsentRecord is one user's consent state. There is at most one record
// per user; granting again upserts, revoking flips the status but keeps
// already collected data in place.
type ConsentRecord struct {
	UserID       string              `bson:"userId" json:"userId"`
	Capabilities ConsentCapabilities `bson:"capabilities" json:"capabilities"`
	Status       string              `bson:"status" json:"status"`
	GrantedAt    time.Time           `bson:"grantedAt" json:"grantedAt"`
	RevokedAt    *time.Time          `bson:"revokedAt,omitempty" json:"revokedAt,omitempty"`
}
