// Package ledger folds the document store into derived stock views:
// per-material balance reports and a flattened transaction list.
// Everything here is a pure function of its inputs, so results are
// identical whether recomputed on every call or memoized by the caller.
package ledger

import (
	"fmt"
	"sort"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/documents"
)

// Filter restricts which documents are folded into a report.
// Unset fields impose no constraint. The material catalog is never
// filtered: materials with no matching documents report zero totals.
type Filter struct {
	// From is the inclusive lower date bound.
	From *types.Date

	// To is the inclusive upper date bound.
	To *types.Date

	// PartnerID restricts to documents of one partner.
	PartnerID *id.ID
}

func (f Filter) matches(d documents.Document) bool {
	if f.From != nil && d.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && d.Date.After(*f.To) {
		return false
	}
	if f.PartnerID != nil && d.EntityID != *f.PartnerID {
		return false
	}
	return true
}

// MaterialReport is the derived per-material snapshot. It is never
// persisted: currentStock = totalIn - totalOut holds by construction,
// and both totals are exact sums over the active document store.
type MaterialReport struct {
	material.Material

	CurrentStock types.Quantity `json:"currentStock"`
	TotalIn      types.Quantity `json:"totalIn"`
	TotalOut     types.Quantity `json:"totalOut"`

	// LastMovement is the latest document date touching the material,
	// nil when nothing matched.
	LastMovement *types.Date `json:"lastMovement"`
}

// BuildReports folds the full document store into one report per material.
func BuildReports(materials []material.Material, docs []documents.Document) []MaterialReport {
	return BuildReportsFiltered(materials, docs, Filter{})
}

// BuildReportsFiltered folds only the documents matching the filter,
// still reporting against the full material catalog.
func BuildReportsFiltered(materials []material.Material, docs []documents.Document, f Filter) []MaterialReport {
	type totals struct {
		in, out types.Quantity
		last    *types.Date
	}

	byMaterial := make(map[id.ID]*totals, len(materials))
	for _, m := range materials {
		byMaterial[m.ID] = &totals{
			in:  types.ZeroQuantity(),
			out: types.ZeroQuantity(),
		}
	}

	for _, doc := range docs {
		if !f.matches(doc) {
			continue
		}
		for _, item := range doc.Items {
			t, ok := byMaterial[item.MaterialID]
			if !ok {
				// Line references a deleted material: it still moved
				// stock historically, but there is no catalog row to
				// report against.
				continue
			}
			switch doc.Type {
			case documents.TypeReceipt:
				t.in = t.in.Add(item.Quantity)
			case documents.TypeIssue:
				t.out = t.out.Add(item.Quantity)
			}
			if t.last == nil || doc.Date.After(*t.last) {
				d := doc.Date
				t.last = &d
			}
		}
	}

	reports := make([]MaterialReport, 0, len(materials))
	for _, m := range materials {
		t := byMaterial[m.ID]
		reports = append(reports, MaterialReport{
			Material: m,
			// Negative stock stays negative: it signals a data
			// problem and must be surfaced, not clamped.
			CurrentStock: t.in.Sub(t.out),
			TotalIn:      t.in,
			TotalOut:     t.out,
			LastMovement: t.last,
		})
	}

	return reports
}

// Transaction is one flattened (document, item) pair.
type Transaction struct {
	ID         string         `json:"id"`
	MaterialID id.ID          `json:"materialId"`
	Quantity   types.Quantity `json:"quantity"`
	Type       documents.Type `json:"type"`
	Date       types.Date     `json:"date"`
}

// Flatten produces one transaction per item per document, globally
// ordered by date descending. Ties keep the document store order
// (stable sort), so the result is deterministic and restartable.
func Flatten(docs []documents.Document) []Transaction {
	txs := make([]Transaction, 0, len(docs))
	for _, doc := range docs {
		for i, item := range doc.Items {
			txs = append(txs, Transaction{
				ID:         fmt.Sprintf("%s-%d", doc.ID, i),
				MaterialID: item.MaterialID,
				Quantity:   item.Quantity,
				Type:       doc.Type,
				Date:       doc.Date,
			})
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	return txs
}
