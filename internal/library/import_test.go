package library

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jonathan/jobfit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_Import(t *testing.T) {
	ctx := context.Background()
	lib, _ := newLibrary(t, nil)

	_, err := lib.Add(ctx, statement("for Fortune 500 clients"), "existing")
	require.NoError(t, err)

	raw, err := json.Marshal(ImportFile{Items: []ImportItem{
		{ID: "new-1", Statement: statement("for Fortune 100 clients")},
		{Statement: statement("for regional banks")},
		{ID: "existing", Statement: statement("for hospital networks")},
		{ID: "weak", Statement: types.SixPartStatement{Action: "Helped", Context: "c", Method: "m", Result: "r", Impact: "i", Outcome: "o"}},
	}})
	require.NoError(t, err)

	report, err := lib.Import(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"new-1", ItemID(statement("for regional banks"))}, report.Added)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 2, report.Skipped[0].Index)
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, "weak", report.Rejected[0].ID)

	items, err := lib.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestLibrary_ImportSchemaErrors(t *testing.T) {
	lib, _ := newLibrary(t, nil)

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{ nope`},
		{"missing items", `{}`},
		{"missing part", `{"items":[{"statement":{"action":"Led"}}]}`},
		{"bad stage", `{"items":[{"statement":{"action":"a","context":"c","method":"m","result":"r","impact":"i","outcome":"o","company_stage":"seed"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lib.Import(context.Background(), []byte(tt.raw))
			assert.True(t, types.IsInputError(err))
		})
	}
}
