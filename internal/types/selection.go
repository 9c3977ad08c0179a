// Package types provides type definitions for structured data used throughout the jobfit engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// SelectRequest is the input for a bullet selection call
type SelectRequest struct {
	JobText      string `json:"job_text" validate:"required"`
	Count        int    `json:"count" validate:"gte=0"`
	PreferUnused bool   `json:"prefer_unused,omitempty"`
}

// Validate validates the SelectRequest using the validator.
func (r *SelectRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SelectedItem is one library item chosen by a selection call
type SelectedItem struct {
	Item       LibraryItem `json:"item"`
	Area       string      `json:"area"`
	Score      float64     `json:"score"`
	Backfilled bool        `json:"backfilled,omitempty"`
}

// SelectionResult is the outcome of allocating bullets across competency areas
type SelectionResult struct {
	Requested       int                `json:"requested"`
	Items           []SelectedItem     `json:"items"`
	Weights         map[string]float64 `json:"weights"`
	Allocation      map[string]int     `json:"allocation"`
	Filled          map[string]int     `json:"filled"`
	Shortfall       int                `json:"shortfall"`
	Underfilled     bool               `json:"underfilled"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// IDs returns the ids of the selected items in order
func (r SelectionResult) IDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, it.Item.ID)
	}
	return ids
}
