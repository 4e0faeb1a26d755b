// Package services contains stateless domain services for the catalog
// bounded context. They operate purely on domain types and have zero
// external dependencies beyond stdlib and the domain layer.
package services

import (
	"strings"

	"github.com/ghuser/atelier/services/catalog/domain/models"
)

// Category values with special meaning in a FilterSpec.
const (
	CategoryAll = "all" // pass every product
	CategoryNew = "new" // pass products flagged as new arrivals
)

// FilterSpec describes the storefront's browse predicates. Zero values act
// as identity: empty Category (or "all") passes everything, empty Collection
// disables the collection stage, blank Search disables the search stage.
type FilterSpec struct {
	Category   string
	Collection string
	Search     string
}

// Filter derives the visible product list from spec. Stages are AND-combined
// and the output preserves the relative order of the input; the input slice
// is never mutated.
func Filter(products []models.Product, spec FilterSpec) []models.Product {
	search := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, spec.Category) {
			continue
		}
		if spec.Collection != "" && p.Collection != spec.Collection {
			continue
		}
		if search != "" && !matchSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchCategory(p models.Product, category string) bool {
	switch category {
	case "", CategoryAll:
		return true
	case CategoryNew:
		return p.IsNew
	default:
		// Exact, case-sensitive match following the feed's convention.
		return p.Category == category
	}
}

// matchSearch compares the lowered needle as a substring against name,
// description, category and collection; a hit on any one field passes.
func matchSearch(p models.Product, needle string) bool {
	fields := []string{p.Name, p.Description, p.Category, p.Collection}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Collections returns the distinct non-empty collection values present
// across products, in first-seen order. Used to populate the collection
// filter controls.
func Collections(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if p.Collection == "" {
			continue
		}
		if _, ok := seen[p.Collection]; ok {
			continue
		}
		seen[p.Collection] = struct{}{}
		out = append(out, p.Collection)
	}
	return out
}
