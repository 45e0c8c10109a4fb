package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantStatus  Status
		wantMessage string
	}{
		{"exact match", "drafting", StatusDrafting, ""},
		{"case folded", "Pending Review", StatusPendingReview, ""},
		{"surrounding whitespace", "  approved  ", StatusApproved, ""},
		{"unrecognised keeps original text", "Work in Progress", StatusUnknown, "Work in Progress"},
		{"empty", "", StatusUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := ParseStatus(tt.raw)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeStandard, ParseType("Standard"))
	assert.Equal(t, TypeProductRequirement, ParseType(" product requirement "))
	assert.Equal(t, TypeUnknown, ParseType("whitepaper"))
	assert.Equal(t, TypeUnknown, ParseType(""))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"iso", "2024-03-03", "2024-03-03"},
		{"long form", "3 March 2024", "2024-03-03"},
		{"us form", "March 3, 2024", "2024-03-03"},
		{"garbage degrades to unknown", "sometime next quarter", "unknown"},
		{"empty", "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.raw).String())
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	known, err := json.Marshal(ParseDate("2024-03-03"))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-03"`, string(known))

	unknown, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `"unknown"`, string(unknown))
}

func TestNewSpecRecordDefaults(t *testing.T) {
	rec := NewSpecRecord()
	assert.Equal(t, StatusUnknown, rec.Status)
	assert.Equal(t, TypeUnknown, rec.Type)
	require.NotNil(t, rec.Authors)
	assert.Empty(t, rec.Authors)
	assert.False(t, rec.Created.Known())
}

func TestRowRoundTrip(t *testing.T) {
	rec := NewSpecRecord()
	rec.FolderName = "Platform"
	rec.FileName = "LX012 Widget lifecycle"
	rec.FileID = "doc-1"
	rec.FileURL = "https://docs.example.com/doc-1"
	rec.Index = "LX012"
	rec.Title = "Widget lifecycle"
	rec.Status = StatusDrafting
	rec.Authors = []string{"Ana García", "Bob Jones"}
	rec.Type = TypeStandard
	rec.CreatedTime = "2024-03-01T09:00:00.000Z"
	rec.LastUpdated = "2024-04-01T10:30:00.000Z"
	rec.NumberOfComments = 5
	rec.OpenComments = 2

	row := rec.Row()
	require.Len(t, row, len(Header()))

	got, err := RecordFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordFromRowUnknownStatusRoundTrip(t *testing.T) {
	// An unknown status is stored as "unknown"; the original text only
	// survives within a single extraction, not across the sheet.
	rec := NewSpecRecord()
	rec.FileID = "doc-2"
	rec.Status, rec.StatusMessage = ParseStatus("WIP")
	require.Equal(t, StatusUnknown, rec.Status)

	got, err := RecordFromRow(rec.Row())
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, got.Status)
	assert.Empty(t, got.StatusMessage)
}

func TestRecordFromRowMalformed(t *testing.T) {
	valid := func() []string {
		rec := NewSpecRecord()
		rec.FileID = "doc-1"
		return rec.Row()
	}

	t.Run("too few columns", func(t *testing.T) {
		_, err := RecordFromRow(valid()[:10])
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("empty file ID", func(t *testing.T) {
		row := valid()
		row[2] = "  "
		_, err := RecordFromRow(row)
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("non-numeric comment count", func(t *testing.T) {
		row := valid()
		row[11] = "lots"
		_, err := RecordFromRow(row)
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("negative open count", func(t *testing.T) {
		row := valid()
		row[12] = "-1"
		_, err := RecordFromRow(row)
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("empty counts default to zero", func(t *testing.T) {
		row := valid()
		row[11], row[12] = "", ""
		rec, err := RecordFromRow(row)
		require.NoError(t, err)
		assert.Zero(t, rec.NumberOfComments)
		assert.Zero(t, rec.OpenComments)
	})
}

func TestNeedsRefresh(t *testing.T) {
	rec := NewSpecRecord()
	rec.FileID = "doc-1"
	rec.LastUpdated = "2024-04-01T10:30:00.000Z"

	assert.False(t, NeedsRefresh(rec, "2024-04-01T10:30:00.000Z"))
	assert.True(t, NeedsRefresh(rec, "2024-04-02T08:00:00.000Z"))
	// Comparison is exact string inequality, so an older live timestamp
	// still forces a refresh.
	assert.True(t, NeedsRefresh(rec, "2024-03-01T00:00:00.000Z"))
	assert.True(t, NeedsRefresh(nil, "2024-04-01T10:30:00.000Z"))
}
