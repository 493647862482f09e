package services

import (
	"fmt"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"sort"
	"strings"
)

var ErrNotificationNotFound = wrapNotFound("notification")

func wrapNotFound(what string) error {
	return errors.Wrap(models.ErrNotFound, what)
}

// ValidationError lists the rejected request fields with a short reason for each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// MissingOnly reports whether every rejected field failed only because it was absent.
func (e *ValidationError) MissingOnly() bool {
	for _, reason := range e.Fields {
		if reason != reasonRequired {
			return false
		}
	}
	return len(e.Fields) > 0
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
