package artifact

import "context"

// NoopRepository is a no-op implementation for wiring and testing.
type NoopRepository struct{}

// NewNoopRepository creates a new no-op repository.
func NewNoopRepository() *NoopRepository {
	return &NoopRepository{}
}

// LogArtifact is a no-op.
func (*NoopRepository) LogArtifact(_ context.Context, _, _ string) error {
	return nil
}

// LogArtifacts is a no-op.
func (*NoopRepository) LogArtifacts(_ context.Context, _, _ string) error {
	return nil
}

// ListArtifacts returns empty for no-op.
func (*NoopRepository) ListArtifacts(_ context.Context, _ string, _ bool) ([]FileInfo, error) {
	return []FileInfo{}, nil
}

// DownloadFile is a no-op.
func (*NoopRepository) DownloadFile(_ context.Context, _, _ string) error {
	return nil
}

// Verify interface compliance.
var _ Repository = (*NoopRepository)(nil)
