// Package datasets provides clients for the Faculty datasets object store.
package datasets

import (
	"context"

	"github.com/google/uuid"
)

// Object is a raw entry from the object store's flat listing.
type Object struct {
	// Path is the object's absolute path within the project's datasets.
	// Directory markers carry a trailing slash.
	Path string `json:"path"`

	// Size is the object size in bytes.
	Size int64 `json:"size"`

	// Etag identifies the object's content version.
	Etag string `json:"etag,omitempty"`
}

// ListObjectsResponse is one page of a prefix listing.
type ListObjectsResponse struct {
	Objects []Object `json:"objects"`

	// NextPageToken continues the listing when non-nil.
	NextPageToken *string `json:"next_page_token"`
}

// ObjectClient lists objects in a project's datasets by path prefix.
// This interface allows for mocking in tests.
type ObjectClient interface {
	// ListObjects returns one page of objects under prefix. Pass the
	// previous response's NextPageToken to fetch the next page, or nil
	// to start from the beginning.
	ListObjects(ctx context.Context, projectID uuid.UUID, prefix string, pageToken *string) (*ListObjectsResponse, error)
}

// TransferClient moves files between the local filesystem and a project's
// datasets.
type TransferClient interface {
	// Put uploads a local file, or a whole directory tree, to datasetsPath.
	Put(ctx context.Context, localPath, datasetsPath string, projectID uuid.UUID) error

	// Get downloads the object at datasetsPath to localPath.
	Get(ctx context.Context, datasetsPath, localPath string, projectID uuid.UUID) error
}
