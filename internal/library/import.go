package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/jobfit/internal/schemas"
	"github.com/jonathan/jobfit/internal/types"
	jsonschemas "github.com/jonathan/jobfit/schemas"
	"go.uber.org/zap"
)

// ImportFile is the on-disk format accepted by Import
type ImportFile struct {
	Items []ImportItem `json:"items"`
}

// ImportItem is one statement to add, with an optional explicit id
type ImportItem struct {
	ID        string                 `json:"id,omitempty"`
	Statement types.SixPartStatement `json:"statement"`
}

// ImportFailure records why one entry was skipped
type ImportFailure struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ImportReport summarizes an Import call
type ImportReport struct {
	Added    []string        `json:"added"`
	Skipped  []ImportFailure `json:"skipped"`
	Rejected []ImportFailure `json:"rejected"`
}

// Import validates raw against the library import schema and adds every
// entry. Duplicates are skipped and invalid statements rejected; neither
// stops the import. Any other store error aborts it.
func (l *Library) Import(ctx context.Context, raw []byte) (*ImportReport, error) {
	if err := schemas.Validate(jsonschemas.LibraryImport, raw); err != nil {
		return nil, &types.InputError{Field: "items", Message: err.Error()}
	}
	var file ImportFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &types.InputError{Field: "items", Message: fmt.Sprintf("failed to decode import file: %v", err)}
	}

	report := &ImportReport{Added: []string{}, Skipped: []ImportFailure{}, Rejected: []ImportFailure{}}
	for i, entry := range file.Items {
		item, err := l.Add(ctx, entry.Statement, entry.ID)
		var rejected *RejectedError
		switch {
		case err == nil:
			report.Added = append(report.Added, item.ID)
		case errors.Is(err, ErrDuplicateID):
			report.Skipped = append(report.Skipped, ImportFailure{Index: i, ID: entry.ID, Reason: err.Error()})
		case errors.As(err, &rejected):
			report.Rejected = append(report.Rejected, ImportFailure{Index: i, ID: entry.ID, Reason: err.Error()})
		default:
			return nil, err
		}
	}
	l.logger.Info("library import finished",
		zap.Int("added", len(report.Added)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("rejected", len(report.Rejected)))
	return report, nil
}
