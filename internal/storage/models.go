package storage

import "time"

// Profile is the stored snapshot of one child's state. State holds the JSON
// document exactly as it was saved; decoding and defaulting happen above
// this layer.
type Profile struct {
	Key       string
	State     []byte
	UpdatedAt time.Time
}

// ActiveRun is the stored snapshot of a run that has not departed yet.
type ActiveRun struct {
	ProfileKey string
	State      []byte
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// Generation is an audit row for one call to the text-generation service.
type Generation struct {
	ID         string
	ProfileKey string
	Kind       string
	Prompt     string
	OK         bool
	CreatedAt  time.Time
}
