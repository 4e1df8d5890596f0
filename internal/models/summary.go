package models

import "time"

// Summary is a generated situation report kept for later download and
// sharing. Rows past ExpiresAt are swept by the repository.
type Summary struct {
	ID           string           `json:"id"`
	DisasterType string           `json:"disaster_type"`
	Location     string           `json:"location,omitempty"`
	Timeframe    string           `json:"timeframe,omitempty"`
	Markdown     string           `json:"markdown"`
	Report       StructuredReport `json:"report"`
	CreatedAt    time.Time        `json:"created_at"`
	ExpiresAt    time.Time        `json:"expires_at"`
}
