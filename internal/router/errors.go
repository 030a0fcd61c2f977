package router

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyScheme is returned by Derive when a path contains no non-group
// segment to take the URI scheme from.
var ErrEmptyScheme = errors.New("path has no non-group segment to derive a scheme from")

// InvalidSegmentNameError reports a bracketed path segment whose interior
// text is empty or contains characters outside [A-Za-z0-9_-].
type InvalidSegmentNameError struct {
	Segment string
}

func (e *InvalidSegmentNameError) Error() string {
	return fmt.Sprintf("invalid segment name in %q: parameter names must match [A-Za-z0-9_-]+", e.Segment)
}

// DuplicateResourceError reports a registration whose derived template is
// already present in the registry. The first registration stays active.
type DuplicateResourceError struct {
	Template string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("duplicate resource template %q", e.Template)
}

// NotFoundError reports a request URI that no registered definition
// matches. It carries the requested URI for diagnostics and is expected
// during normal operation.
type NotFoundError struct {
	URI string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no resource matches %q", e.URI)
}

// AmbiguousRouteError reports two or more templates that can match the same
// concrete request with equal specificity. The registry rejects such pairs
// at insertion time; seeing this error from a match means a registration
// invariant was violated, so it is kept distinct from NotFoundError.
type AmbiguousRouteError struct {
	// URI is the request that triggered the ambiguity, empty when the
	// conflict was detected at registration time.
	URI       string
	Templates []string
}

func (e *AmbiguousRouteError) Error() string {
	templates := strings.Join(e.Templates, ", ")
	if e.URI == "" {
		return fmt.Sprintf("ambiguous route registration: %s match the same requests with equal specificity", templates)
	}
	return fmt.Sprintf("ambiguous route: %q matches %s with equal specificity", e.URI, templates)
}
