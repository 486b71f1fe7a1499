package project

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrProjectNotFound indicates the project doesn't exist.
var ErrProjectNotFound = errors.New("project not found")

// FieldErrors maps field names to validation messages. It is returned before
// any mutation is attempted; nothing reaches the store when it is non-empty.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
