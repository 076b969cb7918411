package facultydatasets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Scheme is the URI scheme identifying Faculty datasets artifact roots.
const Scheme = "faculty-datasets"

// URI validation errors. All are raised at construction time from
// malformed input and can be tested with errors.Is.
var (
	// ErrInvalidScheme is returned when the URI scheme is not
	// "faculty-datasets".
	ErrInvalidScheme = errors.New("not a Faculty datasets URI")

	// ErrReservedNetloc is returned when the URI carries a non-empty
	// authority component, usually from writing scheme://x/y instead of
	// scheme:x/y.
	ErrReservedNetloc = errors.New("netloc is reserved")

	// ErrInvalidProjectID is returned when the first path segment does
	// not parse as a UUID.
	ErrInvalidProjectID = errors.New("invalid project ID")
)

// ParseURI parses a faculty-datasets:<uuid>/<path> URI into a project ID
// and the datasets root path. The root always begins with "/"; a URI of
// "faculty-datasets:<uuid>/path/in/datasets" (with or without a trailing
// slash) yields the root "/path/in/datasets/".
func ParseURI(uri string) (uuid.UUID, string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %s", ErrInvalidScheme, uri)
	}

	if parsed.Scheme != Scheme {
		return uuid.Nil, "", fmt.Errorf("%w: %s", ErrInvalidScheme, uri)
	}

	if parsed.Host != "" || parsed.User != nil {
		return uuid.Nil, "", fmt.Errorf(
			"invalid URI %s: %w, did you mean '%s:%s%s'",
			uri, ErrReservedNetloc, Scheme, parsed.Host, parsed.Path,
		)
	}

	// scheme:a/b parses as an opaque URI, scheme:/a/b as a path.
	raw := parsed.Opaque
	if raw == "" {
		raw = parsed.Path
	}

	cleaned := strings.Trim(raw, "/") + "/"
	first, remainder, _ := strings.Cut(cleaned, "/")

	projectID, err := uuid.Parse(first)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf(
			"%w: %s in URI %s is not a valid UUID", ErrInvalidProjectID, first, uri,
		)
	}

	return projectID, "/" + remainder, nil
}
