// Package artifact provides abstractions for experiment artifact repositories.
package artifact

// FileInfo describes a single artifact entry in a listing.
type FileInfo struct {
	// Path is the entry's path relative to the repository root.
	Path string `json:"path"`

	// IsDir reports whether the entry is a directory.
	IsDir bool `json:"is_dir"`

	// Size is the object size in bytes. Zero for directories.
	Size int64 `json:"size"`
}
