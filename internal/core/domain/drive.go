package domain

// Folder is one first-level subfolder of the tracked root folder.
// Folder names double as team names in the front end.
type Folder struct {
	ID   string
	Name string
}

// DocumentFile is one document as reported by the live Drive listing.
// Timestamps are RFC 3339 strings as returned by the external system;
// they are compared exactly, never parsed for ordering.
type DocumentFile struct {
	ID           string
	Name         string
	CreatedTime  string
	ModifiedTime string
	ViewURL      string
}

// Comment is a document comment, reduced to the single flag the tracker
// cares about.
type Comment struct {
	Resolved bool
}
