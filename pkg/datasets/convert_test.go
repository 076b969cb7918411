package datasets

import (
	"testing"

	"github.com/facultyai/mlflow-faculty-go/pkg/artifact"
)

func TestFileInfoFromObject(t *testing.T) {
	root := "/path/in/datasets/"

	tests := []struct {
		name string
		obj  Object
		want artifact.FileInfo
	}{
		{
			"file",
			Object{Path: "/path/in/datasets/a/dir/file.txt", Size: 42},
			artifact.FileInfo{Path: "a/dir/file.txt", Size: 42},
		},
		{
			"directory marker",
			Object{Path: "/path/in/datasets/a/dir/", Size: 0},
			artifact.FileInfo{Path: "a/dir", IsDir: true},
		},
		{
			"directory size suppressed",
			Object{Path: "/path/in/datasets/a/", Size: 7},
			artifact.FileInfo{Path: "a", IsDir: true},
		},
		{
			"root marker",
			Object{Path: "/path/in/datasets/", Size: 0},
			artifact.FileInfo{Path: ".", IsDir: true},
		},
		{
			"outside the root",
			Object{Path: "/other/file.txt", Size: 1},
			artifact.FileInfo{Path: "../../../other/file.txt", Size: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FileInfoFromObject(tt.obj, root)
			if got != tt.want {
				t.Errorf("FileInfoFromObject() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		target string
		base   string
		want   string
	}{
		{"/a/b/c", "/a/b/", "c"},
		{"/a/b/c/", "/a/b", "c"},
		{"/a/b/", "/a/b/", "."},
		{"/", "/", "."},
		{"/a", "/a/b", ".."},
		{"/x/y", "/a/b", "../../x/y"},
	}

	for _, tt := range tests {
		if got := relativePath(tt.target, tt.base); got != tt.want {
			t.Errorf("relativePath(%q, %q) = %q, want %q", tt.target, tt.base, got, tt.want)
		}
	}
}
