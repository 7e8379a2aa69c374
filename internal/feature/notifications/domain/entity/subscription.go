// Package entity defines the domain models for the notifications feature.
package entity

import "time"

// Subscription represents one browser's Web Push subscription.
// Endpoint and the two encryption keys come from the browser's
// PushManager.subscribe() result and are opaque to the server.
type Subscription struct {
	UserID    uint      // Owning user ID
	Endpoint  string    // Push service URL (unique per browser registration)
	P256dh    string    // Client public key for payload encryption
	Auth      string    // Client auth secret
	CreatedAt time.Time // Registration time
}
