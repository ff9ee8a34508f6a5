package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SortField selects the product comparator. Unknown values fall back to id.
type SortField string

const (
	SortByID       SortField = "id"
	SortByTitle    SortField = "title"
	SortByPrice    SortField = "price"
	SortByCategory SortField = "category"
)

// ParseSortField maps an arbitrary option string onto a supported field.
func ParseSortField(s string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTitle:
		return SortByTitle
	case SortByPrice:
		return SortByPrice
	case SortByCategory:
		return SortByCategory
	default:
		return SortByID
	}
}

// UniqueCategories deduplicates embedded categories by the composite
// "{id}-{name}" key, first occurrence wins, first-seen order preserved.
// Products without a category id are skipped.
func UniqueCategories(products []*Product) []Category {
	seen := make(map[string]struct{}, len(products))
	out := make([]Category, 0, len(products))
	for _, p := range products {
		if p.Category.ID == 0 {
			continue
		}
		key := fmt.Sprintf("%d-%s", p.Category.ID, p.Category.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Statistics aggregates the catalog. TotalValue sums every price;
// average/min/max are computed over the strictly-positive subset, so a
// zero-priced product counts toward totals but not toward the average.
func Statistics(products []*Product) Stats {
	stats := Stats{
		TotalProducts:   len(products),
		TotalCategories: len(UniqueCategories(products)),
	}
	var positives int
	var sum float64
	for _, p := range products {
		stats.TotalValue += p.Price
		if p.Price <= 0 {
			continue
		}
		sum += p.Price
		positives++
		if stats.MinPrice == 0 || p.Price < stats.MinPrice {
			stats.MinPrice = p.Price
		}
		if p.Price > stats.MaxPrice {
			stats.MaxPrice = p.Price
		}
	}
	if positives > 0 {
		stats.AveragePrice = math.Round(sum/float64(positives)*100) / 100
	}
	return stats
}

// Filter keeps products matching both criteria: a case-insensitive
// substring of title, description or slug, and a category matching by
// name (case-insensitive) or by exact id. Empty criteria always match.
// Order is preserved.
func Filter(products []*Product, term, category string) []*Product {
	needle := foldText(term)
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if !matchesTerm(p, needle) || !matchesCategory(p, category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p *Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(foldText(p.Title), needle) ||
		strings.Contains(foldText(p.Description), needle) ||
		strings.Contains(foldText(p.Slug), needle)
}

func matchesCategory(p *Product, category string) bool {
	if category == "" {
		return true
	}
	return strings.EqualFold(p.Category.Name, category) ||
		strconv.Itoa(p.Category.ID) == category
}

// SortProducts returns a new stable ordering; the input slice is never
// reordered. String fields compare case-insensitively, id and price
// numerically.
func SortProducts(products []*Product, field SortField, ascending bool) []*Product {
	out := make([]*Product, len(products))
	copy(out, products)
	less := comparator(field)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func comparator(field SortField) func(a, b *Product) bool {
	switch field {
	case SortByTitle:
		return func(a, b *Product) bool {
			return foldText(a.Title) < foldText(b.Title)
		}
	case SortByPrice:
		return func(a, b *Product) bool { return a.Price < b.Price }
	case SortByCategory:
		return func(a, b *Product) bool {
			return foldText(a.Category.Name) < foldText(b.Category.Name)
		}
	default:
		return func(a, b *Product) bool { return a.ID < b.ID }
	}
}

// foldText lowercases through NFKC so search and ordering treat
// compatibility variants of the same text as equal.
func foldText(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
