package datasets

import (
	"path"
	"strings"

	"github.com/facultyai/mlflow-faculty-go/pkg/artifact"
)

// FileInfoFromObject converts a raw object record into a display-ready
// FileInfo with a path relative to rootPath. Objects whose raw path ends
// in a slash are directories and report a zero size.
func FileInfoFromObject(obj Object, rootPath string) artifact.FileInfo {
	info := artifact.FileInfo{Path: relativePath(obj.Path, rootPath)}
	if strings.HasSuffix(obj.Path, "/") {
		info.IsDir = true
	} else {
		info.Size = obj.Size
	}
	return info
}

// relativePath computes the POSIX relative path from base to target,
// including ".." segments when target lies outside base.
func relativePath(target, base string) string {
	t := pathSegments(target)
	b := pathSegments(base)

	common := 0
	for common < len(t) && common < len(b) && t[common] == b[common] {
		common++
	}

	parts := make([]string, 0, len(b)-common+len(t)-common)
	for range b[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, t[common:]...)

	if len(parts) == 0 {
		return "."
	}
	return path.Join(parts...)
}

func pathSegments(p string) []string {
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return nil
	}
	return strings.Split(cleaned[1:], "/")
}
