package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100

	cursorPrefix = "pos:"
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Page is one window over an ordered list. NextCursor is empty on the last page.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor pointing at a list position.
func EncodeCursor(position int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(position)))
}

// ParseCursor decodes a cursor back into a list position. Empty means the start.
func ParseCursor(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor format")
	}
	position, err := strconv.Atoi(raw)
	if err != nil || position < 0 {
		return 0, fmt.Errorf("invalid cursor position %q", raw)
	}
	return position, nil
}

// Slice returns the page of items selected by params.
func Slice[T any](items []T, params Params) (Page[T], error) {
	start, err := ParseCursor(params.Cursor)
	if err != nil {
		return Page[T]{}, err
	}
	if start > len(items) {
		start = len(items)
	}
	end := start + NormalizeLimit(params.Limit)
	page := Page[T]{}
	if end < len(items) {
		page.NextCursor = EncodeCursor(end)
	} else {
		end = len(items)
	}
	page.Items = append(make([]T, 0, end-start), items[start:end]...)
	return page, nil
}
