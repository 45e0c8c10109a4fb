package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Status is the review state declared in a spec's metadata table.
// It is a closed enumeration: unrecognised input is coerced to
// StatusUnknown, never stored as raw text.
type Status string

// Recognised status values.
const (
	StatusActive        Status = "active"
	StatusApproved      Status = "approved"
	StatusBraindump     Status = "braindump"
	StatusCompleted     Status = "completed"
	StatusDrafting      Status = "drafting"
	StatusObsolete      Status = "obsolete"
	StatusPendingReview Status = "pending review"
	StatusRejected      Status = "rejected"
	StatusUnknown       Status = "unknown"
)

var knownStatuses = map[Status]bool{
	StatusActive:        true,
	StatusApproved:      true,
	StatusBraindump:     true,
	StatusCompleted:     true,
	StatusDrafting:      true,
	StatusObsolete:      true,
	StatusPendingReview: true,
	StatusRejected:      true,
	StatusUnknown:       true,
}

// ParseStatus coerces free text into the closed Status set.
// For input outside the set it returns StatusUnknown together with the
// original text so callers can surface what the document actually said.
func ParseStatus(raw string) (Status, string) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if knownStatuses[s] {
		return s, ""
	}
	return StatusUnknown, strings.TrimSpace(raw)
}

// SpecType is the document category declared in a spec's metadata table.
// Closed enumeration with the same coercion policy as Status.
type SpecType string

// Recognised spec types.
const (
	TypeImplementation     SpecType = "implementation"
	TypeProductRequirement SpecType = "product requirement"
	TypeStandard           SpecType = "standard"
	TypeInformational      SpecType = "informational"
	TypeProcess            SpecType = "process"
	TypeUnknown            SpecType = "unknown"
)

var knownTypes = map[SpecType]bool{
	TypeImplementation:     true,
	TypeProductRequirement: true,
	TypeStandard:           true,
	TypeInformational:      true,
	TypeProcess:            true,
	TypeUnknown:            true,
}

// ParseType coerces free text into the closed SpecType set.
func ParseType(raw string) SpecType {
	t := SpecType(strings.ToLower(strings.TrimSpace(raw)))
	if knownTypes[t] {
		return t
	}
	return TypeUnknown
}

// Date is a date-or-unknown value parsed from free text.
// The zero value means unknown and renders as the string "unknown".
type Date struct {
	time.Time
}

// ParseDate parses a loosely formatted date ("3 March 2024", "2024-03-03",
// "Mar 3rd 2024"...). Unparsable input yields the unknown Date, never an
// error.
func ParseDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return Date{}
	}
	return Date{t}
}

// Known reports whether the date was successfully parsed.
func (d Date) Known() bool {
	return !d.IsZero()
}

// String renders the date as YYYY-MM-DD, or "unknown".
func (d Date) String() string {
	if !d.Known() {
		return "unknown"
	}
	return d.Format("2006-01-02")
}

// MarshalJSON renders the date as a quoted String().
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// SpecRecord is one document's extracted state: the metadata table fields
// plus the live Drive listing fields and comment counts.
type SpecRecord struct {
	FolderName string `json:"folderName"`
	FileName   string `json:"fileName"`
	FileID     string `json:"fileID"`
	FileURL    string `json:"fileURL"`

	Index  string `json:"index"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	// StatusMessage holds the original status text when Status was coerced
	// to unknown. Not persisted to the sheet.
	StatusMessage string   `json:"statusMessage,omitempty"`
	Authors       []string `json:"authors"`
	Type          SpecType `json:"type"`
	Created       Date     `json:"created"`

	// CreatedTime and LastUpdated are the external Drive timestamps
	// (RFC 3339). LastUpdated is the staleness comparison key.
	CreatedTime string `json:"createdTime"`
	LastUpdated string `json:"lastUpdated"`

	NumberOfComments int `json:"numberOfComments"`
	OpenComments     int `json:"openComments"`
}

// NewSpecRecord returns a record with freshly constructed defaults.
// Every record owns its authors slice; defaults are never shared.
func NewSpecRecord() *SpecRecord {
	return &SpecRecord{
		Status:  StatusUnknown,
		Type:    TypeUnknown,
		Authors: []string{},
	}
}

// Sheet column layout. Order is part of the persisted contract.
const recordColumns = 13

// Header returns the canonical sheet header row.
func Header() []string {
	return []string{
		"Folder name",
		"File name",
		"File ID",
		"File URL",
		"Index",
		"Title",
		"Status",
		"Authors",
		"Type",
		"Created",
		"Last updated",
		"Number of comments",
		"Number of open comments",
	}
}

// Row encodes the record as one sheet row, columns in Header() order.
func (r *SpecRecord) Row() []string {
	return []string{
		r.FolderName,
		r.FileName,
		r.FileID,
		r.FileURL,
		r.Index,
		r.Title,
		string(r.Status),
		strings.Join(r.Authors, ", "),
		string(r.Type),
		r.CreatedTime,
		r.LastUpdated,
		strconv.Itoa(r.NumberOfComments),
		strconv.Itoa(r.OpenComments),
	}
}

// RecordFromRow decodes a previously stored sheet row. Rows that do not
// fit the persisted layout fail with ErrMalformedRow; callers treat such
// rows as if no prior record existed.
func RecordFromRow(row []string) (*SpecRecord, error) {
	if len(row) < recordColumns {
		return nil, fmt.Errorf("%w: %d columns, want %d", ErrMalformedRow, len(row), recordColumns)
	}
	if strings.TrimSpace(row[2]) == "" {
		return nil, fmt.Errorf("%w: empty file ID", ErrMalformedRow)
	}

	comments, err := parseCount(row[11])
	if err != nil {
		return nil, fmt.Errorf("%w: comment count %q", ErrMalformedRow, row[11])
	}
	open, err := parseCount(row[12])
	if err != nil {
		return nil, fmt.Errorf("%w: open comment count %q", ErrMalformedRow, row[12])
	}

	status, message := ParseStatus(row[6])
	rec := NewSpecRecord()
	rec.FolderName = row[0]
	rec.FileName = row[1]
	rec.FileID = row[2]
	rec.FileURL = row[3]
	rec.Index = row[4]
	rec.Title = row[5]
	rec.Status = status
	rec.StatusMessage = message
	rec.Authors = splitAuthors(row[7])
	rec.Type = ParseType(row[8])
	rec.CreatedTime = row[9]
	rec.LastUpdated = row[10]
	rec.NumberOfComments = comments
	rec.OpenComments = open
	return rec, nil
}

// NeedsRefresh decides whether a document's stored record can be reused.
// Any change to the external modification timestamp forces re-extraction;
// only an exact match allows reuse.
func NeedsRefresh(existing *SpecRecord, liveModifiedTime string) bool {
	if existing == nil {
		return true
	}
	return existing.LastUpdated != liveModifiedTime
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	return n, nil
}

func splitAuthors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
