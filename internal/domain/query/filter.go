// Package query provides composable document filters and the
// per-material movement history view. Filters are pure predicates over
// a document slice; they never touch the store directly.
package query

import (
	"sort"
	"strings"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
)

// Predicate decides whether a document passes a filter.
type Predicate func(documents.Document) bool

// And combines predicates; a document passes only if it passes all.
func And(preds ...Predicate) Predicate {
	return func(d documents.Document) bool {
		for _, p := range preds {
			if !p(d) {
				return false
			}
		}
		return true
	}
}

// ByDateRange keeps documents dated within [from, to] inclusive.
// A nil bound is open.
func ByDateRange(from, to *types.Date) Predicate {
	return func(d documents.Document) bool {
		if from != nil && d.Date.Before(*from) {
			return false
		}
		if to != nil && d.Date.After(*to) {
			return false
		}
		return true
	}
}

// BySearch keeps documents whose reference number or partner name
// contains the query as a substring. An empty query keeps everything.
// partnerName resolves an entity id to its display name, returning ""
// for deleted partners so those documents only match via reference.
func BySearch(query string, partnerName func(id.ID) string) Predicate {
	if query == "" {
		return func(documents.Document) bool { return true }
	}
	return func(d documents.Document) bool {
		if strings.Contains(d.ReferenceNo, query) {
			return true
		}
		return strings.Contains(partnerName(d.EntityID), query)
	}
}

// ByPartner keeps documents of one partner; nil keeps everything.
func ByPartner(partnerID *id.ID) Predicate {
	return func(d documents.Document) bool {
		return partnerID == nil || d.EntityID == *partnerID
	}
}

// ByType keeps documents of one type; nil keeps everything.
func ByType(docType *documents.Type) Predicate {
	return func(d documents.Document) bool {
		return docType == nil || d.Type == *docType
	}
}

// ByCategory keeps documents where any line's material belongs to the
// category. categoryOf reports (category, true) for catalog materials
// and false for deleted ones, which never match. An empty category
// keeps everything.
func ByCategory(category string, categoryOf func(id.ID) (string, bool)) Predicate {
	if category == "" {
		return func(documents.Document) bool { return true }
	}
	return func(d documents.Document) bool {
		for _, item := range d.Items {
			if c, ok := categoryOf(item.MaterialID); ok && c == category {
				return true
			}
		}
		return false
	}
}

// Apply filters docs and returns the survivors sorted by date
// descending. The sort is stable, so equal dates keep store order
// (newest insertion first).
func Apply(docs []documents.Document, p Predicate) []documents.Document {
	out := make([]documents.Document, 0, len(docs))
	for _, d := range docs {
		if p(d) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
