package repository

import "context"

// SettingsRepository defines the interface for the key/value settings table
type SettingsRepository interface {
	// Get returns the value for key, or "" when the key is absent. A
	// missing key is not an error; callers treat it as the zero value.
	Get(ctx context.Context, key string) (string, error)
	// Set upserts the value for key.
	Set(ctx context.Context, key, value string) error
}
