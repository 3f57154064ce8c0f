package types

import "time"

// DirectoryType is the type tag carried by directory entries.
const DirectoryType = "directory"

// DefaultFileType is used when a file is saved without a content type.
const DefaultFileType = "text/plain"

// Entry is a single record in the virtual file system. Files and
// directories share the same shape; directories carry no content.
type Entry struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Parent     string    `json:"parent"`
	Content    *string   `json:"content,omitempty"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e != nil && e.Type == DirectoryType
}

// Clone returns a deep copy so callers cannot mutate store state.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	if e.Content != nil {
		content := *e.Content
		c.Content = &content
	}
	return &c
}

// Text returns the content or an empty string for directories.
func (e *Entry) Text() string {
	if e == nil || e.Content == nil {
		return ""
	}
	return *e.Content
}
