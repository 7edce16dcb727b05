package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for catalog validation.
var (
	// ErrInvalidEnum indicates an unrecognized tier, pitaka or book type.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrMissingField indicates a required field (file_name, tier, pitaka) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrIndexOrder indicates a book's index differs from its position.
	ErrIndexOrder = errors.New("index does not match position")
	// ErrDuplicateIndex indicates two or more books share the same index.
	ErrDuplicateIndex = errors.New("duplicate book index")
	// ErrDuplicateFile indicates two or more books share the same file name.
	ErrDuplicateFile = errors.New("duplicate file name")
	// ErrUnknownRef indicates a reference names an index that does not exist.
	ErrUnknownRef = errors.New("reference to unknown index")
	// ErrTierMismatch indicates a reference points at a book of the wrong tier.
	ErrTierMismatch = errors.New("reference tier mismatch")
	// ErrSentinelRange indicates the catalog is large enough for NoLink to collide with a real index.
	ErrSentinelRange = errors.New("catalog reaches the no-link sentinel")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMissingField   ValidationCategory = "missing_field"
	ValCatInvalidEnum    ValidationCategory = "invalid_enum"
	ValCatIndexOrder     ValidationCategory = "index_order"
	ValCatDuplicateIndex ValidationCategory = "duplicate_index"
	ValCatDuplicateFile  ValidationCategory = "duplicate_file"
	ValCatUnknownRef     ValidationCategory = "unknown_ref"
	ValCatTierMismatch   ValidationCategory = "tier_mismatch"
	ValCatSentinelRange  ValidationCategory = "sentinel_range"
)

// ValidationError records a single authoring problem in the catalog.
type ValidationError struct {
	Category ValidationCategory
	Position int // Position in the source table, -1 for catalog-wide problems
	FileName string
	Field    string
	Err      error
}

// Error returns a human-readable string including the book's position and file.
func (e *ValidationError) Error() string {
	if e.Position < 0 {
		return "catalog: " + e.Err.Error()
	}
	name := e.FileName
	if name == "" {
		name = "(no file name)"
	}
	return fmt.Sprintf("book #%d %s: %v", e.Position, name, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors is returned by New when the table breaks an invariant.
type ValidationErrors struct {
	Errs []ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	msgs := make([]string, len(e.Errs))
	for i := range e.Errs {
		msgs[i] = e.Errs[i].Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes every validation error to errors.Is/As.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errs))
	for i := range e.Errs {
		errs[i] = &e.Errs[i]
	}
	return errs
}
