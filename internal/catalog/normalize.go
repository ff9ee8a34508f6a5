package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize parses a raw JSON feed and coerces every element into the
// canonical Product shape. A parse failure (or a non-array top level)
// returns the error together with a nil slice; callers are expected to
// continue with an empty catalog. Individual malformed elements never
// fail: a non-object element becomes a fully-defaulted record, and each
// field is coerced independently to its zero default (0, "", []).
func Normalize(raw []byte) ([]*Product, error) {
	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	products := make([]*Product, 0, len(entries))
	for _, entry := range entries {
		obj, _ := entry.(map[string]any)
		products = append(products, normalizeEntry(obj))
	}
	return products, nil
}

func normalizeEntry(entry map[string]any) *Product {
	return &Product{
		ID:          asInt(entry["id"]),
		Title:       asString(entry["title"]),
		Slug:        asString(entry["slug"]),
		Description: asString(entry["description"]),
		Price:       asPrice(entry["price"]),
		Category:    normalizeCategory(entry["category"]),
		Images:      asStringSlice(entry["images"]),
		CreationAt:  asString(entry["creationAt"]),
		UpdatedAt:   asString(entry["updatedAt"]),
		IsDeleted:   asBool(entry["isDeleted"]),
		Comments:    normalizeComments(entry["comments"]),
	}
}

// normalizeCategory defaults field by field; a missing or malformed
// category value yields the zero Category, never an error.
func normalizeCategory(v any) Category {
	obj, _ := v.(map[string]any)
	return Category{
		ID:         asInt(obj["id"]),
		Name:       asString(obj["name"]),
		Slug:       asString(obj["slug"]),
		Image:      asString(obj["image"]),
		CreationAt: asString(obj["creationAt"]),
		UpdatedAt:  asString(obj["updatedAt"]),
	}
}

func normalizeComments(v any) []Comment {
	arr, ok := v.([]any)
	if !ok {
		return []Comment{}
	}
	comments := make([]Comment, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		comments = append(comments, Comment{
			ID:        asString(obj["id"]),
			Content:   asString(obj["content"]),
			Author:    asString(obj["author"]),
			CreatedAt: asString(obj["createdAt"]),
		})
	}
	return comments
}

// asString is the stringify-or-empty rule: strings pass through, numbers
// and booleans are formatted, everything else becomes "".
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// asFloat is the numify-or-zero rule: numbers pass through, numeric
// strings parse, everything else becomes 0.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// asPrice additionally clamps negatives: prices are non-negative by
// contract, so a negative source value defaults to 0 like any other
// non-coercible one.
func asPrice(v any) float64 {
	f := asFloat(v)
	if f < 0 {
		return 0
	}
	return f
}

func asInt(v any) int {
	return int(asFloat(v))
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		out = append(out, asString(el))
	}
	return out
}

// Slugify lowercases a title, applies NFKC normalization and collapses
// runs of whitespace into single hyphens.
func Slugify(title string) string {
	folded := strings.ToLower(norm.NFKC.String(strings.TrimSpace(title)))
	fields := strings.Fields(folded)
	return strings.Join(fields, "-")
}
