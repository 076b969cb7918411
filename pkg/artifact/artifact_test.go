package artifact

import (
	"context"
	"testing"
)

func TestNoopRepository(t *testing.T) {
	repo := NewNoopRepository()
	ctx := context.Background()

	if err := repo.LogArtifact(ctx, "/local/file", ""); err != nil {
		t.Errorf("LogArtifact() error = %v", err)
	}
	if err := repo.LogArtifacts(ctx, "/local/dir", "dest"); err != nil {
		t.Errorf("LogArtifacts() error = %v", err)
	}
	if err := repo.DownloadFile(ctx, "remote", "/local/file"); err != nil {
		t.Errorf("DownloadFile() error = %v", err)
	}

	infos, err := repo.ListArtifacts(ctx, "", true)
	if err != nil {
		t.Fatalf("ListArtifacts() error = %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("ListArtifacts() returned %d entries, want 0", len(infos))
	}
}

func TestFileInfo(t *testing.T) {
	info := FileInfo{Path: "a/b.txt", Size: 42}
	if info.IsDir {
		t.Error("file should not be a directory")
	}

	dir := FileInfo{Path: "a", IsDir: true}
	if dir.Size != 0 {
		t.Errorf("directory size = %d, want 0", dir.Size)
	}
}
