// Package facultydatasets stores experiment artifacts in Faculty datasets.
//
// Artifact roots are addressed by faculty-datasets:<uuid>/<path> URIs,
// where the UUID identifies the project and the remainder is a path
// within the project's datasets. The backing store is flat and
// prefix-addressed; listings are reconstructed into a hierarchical view.
package facultydatasets

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/facultyai/mlflow-faculty-go/pkg/artifact"
	"github.com/facultyai/mlflow-faculty-go/pkg/datasets"
)

// Repository implements artifact.Repository on top of the Faculty
// datasets object store. It is stateless beyond the project ID and root
// path fixed at construction, so concurrent use needs no coordination.
type Repository struct {
	projectID uuid.UUID
	root      string
	objects   datasets.ObjectClient
	transfer  datasets.TransferClient
}

// New creates a repository from an artifact URI and the datasets clients
// it delegates to.
func New(uri string, objects datasets.ObjectClient, transfer datasets.TransferClient) (*Repository, error) {
	if objects == nil {
		return nil, fmt.Errorf("object client is required")
	}
	if transfer == nil {
		return nil, fmt.Errorf("transfer client is required")
	}

	projectID, root, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	return &Repository{
		projectID: projectID,
		root:      root,
		objects:   objects,
		transfer:  transfer,
	}, nil
}

// ProjectID returns the project the repository is bound to.
func (r *Repository) ProjectID() uuid.UUID {
	return r.projectID
}

// Root returns the datasets path prefix all operations are confined to.
func (r *Repository) Root() string {
	return r.root
}

// datasetsPath resolves an artifact path relative to the root into a
// normalized absolute datasets path.
func (r *Repository) datasetsPath(artifactPath string) string {
	return path.Join(r.root, strings.TrimLeft(artifactPath, "/"))
}

// LogArtifact uploads a single local file to artifactPath under the
// root. The file keeps its base name. An empty artifactPath targets the
// root itself.
func (r *Repository) LogArtifact(ctx context.Context, localFile, artifactPath string) error {
	dest := path.Join(artifactPath, filepath.Base(localFile))
	return r.transfer.Put(ctx, localFile, r.datasetsPath(dest), r.projectID)
}

// LogArtifacts uploads the contents of localDir to artifactPath under
// the root. Unlike LogArtifact the directory's own name is not appended;
// the whole tree lands at the destination.
func (r *Repository) LogArtifacts(ctx context.Context, localDir, artifactPath string) error {
	return r.transfer.Put(ctx, localDir, r.datasetsPath(artifactPath), r.projectID)
}

// ListArtifacts enumerates objects under p, paginating the store's flat
// prefix listing to exhaustion. When recursive is false only entries
// directly within p are returned; the parent-directory comparison uses
// the literal p argument, so callers should pass the same string the
// converted display paths will carry as their parent.
func (r *Repository) ListArtifacts(ctx context.Context, p string, recursive bool) ([]artifact.FileInfo, error) {
	// Make sure the path is interpreted as a directory even if it names
	// a file.
	prefix := strings.TrimRight(r.datasetsPath(p), "/") + "/"

	page, err := r.objects.ListObjects(ctx, r.projectID, prefix, nil)
	if err != nil {
		return nil, err
	}
	objects := page.Objects

	for page.NextPageToken != nil {
		page, err = r.objects.ListObjects(ctx, r.projectID, prefix, page.NextPageToken)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page.Objects...)
	}

	// Drop the root markers, and outside recursive mode keep only the
	// entries directly in the requested path.
	infos := make([]artifact.FileInfo, 0, len(objects))
	for _, obj := range objects {
		info := datasets.FileInfoFromObject(obj, r.root)
		if info.Path == "/" || info.Path == "." {
			continue
		}
		if !recursive {
			if parent := parentDir(info.Path); parent != "" && parent != p {
				continue
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// DownloadFile fetches the object at remotePath under the root to
// localPath.
func (r *Repository) DownloadFile(ctx context.Context, remotePath, localPath string) error {
	return r.transfer.Get(ctx, r.datasetsPath(remotePath), localPath, r.projectID)
}

// parentDir returns the directory component of a display path, "" when
// there is none.
func parentDir(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	head := strings.TrimRight(p[:i+1], "/")
	if head == "" {
		return p[:i+1]
	}
	return head
}

// Verify interface compliance.
var _ artifact.Repository = (*Repository)(nil)
