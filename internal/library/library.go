// Package library owns the reusable bullet library: validated inserts,
// filtered listing, statistics, and selection with usage tracking.
package library

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobfit/internal/bullets"
	"github.com/jonathan/jobfit/internal/selection"
	"github.com/jonathan/jobfit/internal/types"
	"go.uber.org/zap"
)

// idNamespace scopes content-derived item ids
var idNamespace = uuid.MustParse("6f1c3a52-8d0e-4c7b-9a55-2f0e4b7d1c90")

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Competency   string      `json:"competency,omitempty"`
	CompanyStage types.Stage `json:"company_stage,omitempty"`
	MinQuality   int         `json:"min_quality,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
}

// Stats summarizes the library contents
type Stats struct {
	TotalItems             int            `json:"total_items"`
	AverageQuality         float64        `json:"average_quality"`
	CompetencyDistribution map[string]int `json:"competency_distribution"`
	StageDistribution      map[string]int `json:"stage_distribution"`
	TotalUsage             int            `json:"total_usage"`
	MostUsedID             string         `json:"most_used_id,omitempty"`
}

// Library is the single writer for library items. All mutations, including
// usage counters bumped by Select, go through its mutex.
type Library struct {
	mu       sync.Mutex
	store    Store
	analyzer *bullets.Analyzer
	selector *selection.Selector
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a library over a store. A nil logger disables logging.
func New(store Store, analyzer *bullets.Analyzer, selector *selection.Selector, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		store:    store,
		analyzer: analyzer,
		selector: selector,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ItemID derives the stable id for a statement's assembled text
func ItemID(s types.SixPartStatement) string {
	return uuid.NewSHA1(idNamespace, []byte(bullets.Assemble(s))).String()
}

// Add validates and inserts a statement. An empty id is derived from the
// statement content, so re-adding the same statement reports ErrDuplicateID.
func (l *Library) Add(ctx context.Context, stmt types.SixPartStatement, id string) (types.LibraryItem, error) {
	result := l.analyzer.Analyze(stmt)
	if !result.IsValid {
		l.logger.Info("rejected library insert",
			zap.Int("quality_score", result.QualityScore),
			zap.Strings("errors", result.Errors))
		return types.LibraryItem{}, &RejectedError{Validation: result}
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = ItemID(stmt)
	}
	now := l.now()
	item := types.LibraryItem{
		ID:           id,
		Statement:    stmt.Clone(),
		Text:         result.AssembledText,
		QualityScore: result.QualityScore,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Create(ctx, item); err != nil {
		return types.LibraryItem{}, err
	}
	l.logger.Debug("library item added", zap.String("id", id), zap.Int("quality_score", item.QualityScore))
	return item, nil
}

// Get returns one item
func (l *Library) Get(ctx context.Context, id string) (types.LibraryItem, error) {
	return l.store.Get(ctx, id)
}

// Update revalidates and replaces an item's statement, keeping its usage
// history and creation time.
func (l *Library) Update(ctx context.Context, id string, stmt types.SixPartStatement) (types.LibraryItem, error) {
	result := l.analyzer.Analyze(stmt)
	if !result.IsValid {
		return types.LibraryItem{}, &RejectedError{Validation: result}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item, err := l.store.Get(ctx, id)
	if err != nil {
		return types.LibraryItem{}, err
	}
	item.Statement = stmt.Clone()
	item.Text = result.AssembledText
	item.QualityScore = result.QualityScore
	item.UpdatedAt = l.now()
	if err := l.store.Update(ctx, item); err != nil {
		return types.LibraryItem{}, err
	}
	return item, nil
}

// Delete removes an item
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Delete(ctx, id)
}

// List returns items matching the filter, highest quality first
func (l *Library) List(ctx context.Context, f Filter) ([]types.LibraryItem, error) {
	items, err := l.store.List(ctx)
	if err != nil {
		return nil, &Error{Message: "failed to list library items", Cause: err}
	}

	out := make([]types.LibraryItem, 0, len(items))
	for _, item := range items {
		if f.matches(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].QualityScore != out[j].QualityScore {
			return out[i].QualityScore > out[j].QualityScore
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f Filter) matches(item types.LibraryItem) bool {
	if f.Competency != "" && !strings.EqualFold(f.Competency, item.Statement.Competency) {
		return false
	}
	if f.CompanyStage != "" && f.CompanyStage != item.Statement.CompanyStage {
		return false
	}
	if item.QualityScore < f.MinQuality {
		return false
	}
	if len(f.Tags) == 0 {
		return true
	}
	for _, want := range f.Tags {
		for _, tag := range item.Statement.Tags {
			if strings.EqualFold(want, tag) {
				return true
			}
		}
	}
	return false
}

// Stats computes library-wide statistics
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	items, err := l.store.List(ctx)
	if err != nil {
		return Stats{}, &Error{Message: "failed to list library items", Cause: err}
	}

	st := Stats{
		TotalItems:             len(items),
		CompetencyDistribution: make(map[string]int),
		StageDistribution:      make(map[string]int),
	}
	if len(items) == 0 {
		return st, nil
	}

	quality, mostUsed := 0, -1
	for _, item := range items {
		quality += item.QualityScore
		st.TotalUsage += item.UsageCount

		competency := item.Statement.Competency
		if competency == "" {
			competency = "uncategorized"
		}
		st.CompetencyDistribution[competency]++

		stage := string(item.Statement.CompanyStage)
		if stage == "" {
			stage = "any"
		}
		st.StageDistribution[stage]++

		// items arrive ordered by id, so ties keep the lowest id
		if item.UsageCount > mostUsed {
			mostUsed = item.UsageCount
			st.MostUsedID = item.ID
		}
	}
	st.AverageQuality = float64(quality) / float64(len(items))
	if mostUsed == 0 {
		st.MostUsedID = ""
	}
	return st, nil
}

// Select chooses items for a job and records their usage. The whole call
// holds the library lock so concurrent selections never interleave a
// snapshot with another call's usage update.
func (l *Library) Select(ctx context.Context, req types.SelectRequest) (*types.SelectionResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pool, err := l.store.List(ctx)
	if err != nil {
		return nil, &Error{Message: "failed to load selection pool", Cause: err}
	}

	result, err := l.selector.Select(pool, req)
	if err != nil {
		return nil, err
	}

	ids := result.IDs()
	if len(ids) > 0 {
		if err := l.store.RecordUsage(ctx, ids, l.now()); err != nil {
			return nil, &Error{Message: "failed to record usage", Cause: err}
		}
	}

	if result.Shortfall > 0 || result.Underfilled {
		l.logger.Warn("selection under-filled",
			zap.Int("requested", result.Requested),
			zap.Int("selected", len(result.Items)),
			zap.Int("shortfall", result.Shortfall))
	}
	return result, nil
}

// IsNotFound reports whether err is a missing-item error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
