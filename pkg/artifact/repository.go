package artifact

import "context"

// Repository stores and retrieves experiment artifacts under a fixed root.
// The Faculty datasets adapter implements this. Future backends (local
// filesystem, S3) can too.
type Repository interface {
	// LogArtifact uploads a single local file to artifactPath under the
	// repository root. An empty artifactPath means the root itself.
	LogArtifact(ctx context.Context, localFile, artifactPath string) error

	// LogArtifacts uploads the contents of a local directory tree to
	// artifactPath under the repository root.
	LogArtifacts(ctx context.Context, localDir, artifactPath string) error

	// ListArtifacts enumerates entries under path. When recursive is
	// false only entries directly within path are returned.
	ListArtifacts(ctx context.Context, path string, recursive bool) ([]FileInfo, error)

	// DownloadFile fetches a single remote artifact to localPath.
	DownloadFile(ctx context.Context, remotePath, localPath string) error
}
