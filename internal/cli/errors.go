package cli

import (
	"fmt"
	"sort"
	"strings"

	"stockpile/internal/form"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type validationError struct {
	fields form.Fields
}

func (e validationError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.fields[k])
	}
	return "invalid item: " + strings.Join(parts, "; ")
}

func errValidation(fields form.Fields) error {
	return validationError{fields: fields}
}

func errInvalidFlag(flag, got, want string) error {
	return fmt.Errorf("invalid %s value %q (want %s)", flag, got, want)
}
