package catalog

import "fmt"

// ParseError reports a malformed catalog definition: bad JSON, missing
// or out-of-range rectangle bounds, duplicate identifiers, zero-area
// regions. The definition file must be fixed by the user.
type ParseError struct {
	Path   string // source path, empty when parsed from memory
	Detail string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("catalog: parse: %s", e.Detail)
	}
	return fmt.Sprintf("catalog: parse %s: %s", e.Path, e.Detail)
}

// ValidationError reports metadata that is internally inconsistent:
// rotation allowances that conflict with a texel-locked region's aspect,
// or overlapping regions that are not alternates of one another.
type ValidationError struct {
	RegionID string
	Detail   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog: region %q: %s", e.RegionID, e.Detail)
}
