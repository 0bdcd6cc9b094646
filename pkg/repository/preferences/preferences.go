// Package preferences defines persistence of a session's layout: the
// ordered currency list and the selected base currency. This is the only
// durably persisted user state; rates have their own cache and the keypad
// input string is deliberately never persisted.
package preferences

import "context"

// Layout is a session's saved currency arrangement.
type Layout struct {
	SessionID string
	Codes     []string // display order
	BaseCode  string
}

// Repository stores one Layout per session.
type Repository interface {
	// Get returns the saved layout, or (nil, nil) when none exists.
	Get(ctx context.Context, sessionID string) (*Layout, error)
	// Save upserts the layout for its session.
	Save(ctx context.Context, layout Layout) error
}
