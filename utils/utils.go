package utils

import (
	"fmt"
	"strings"
)

func P[T ~string | ~int32 | ~int | ~bool](src T) *T {
	return &src
}

// Or returns the first non zero value.
func Or[T comparable](values ...T) (res T) {
	var zero T

	for _, v := range values {
		if v != zero {
			return v
		}
	}

	return
}

// StrOr trims value and falls back to def when nothing is left.
func StrOr(value string, def string) string {
	value = strings.TrimSpace(value)

	if value == "" {
		return def
	}

	return value
}

// ToString converts a row cell to text. Nil stays empty.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}

	return fmt.Sprint(value)
}
