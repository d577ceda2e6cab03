package query

import (
	"sort"
	"strings"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
)

// UnknownPartnerName is shown when a document references a partner
// that was deleted from the catalog.
const UnknownPartnerName = "مجهول"

// MovementLine is one material's movement inside one document.
type MovementLine struct {
	DocumentID  id.ID          `json:"documentId"`
	Date        types.Date     `json:"date"`
	Type        documents.Type `json:"type"`
	ReferenceNo string         `json:"referenceNo"`
	EntityName  string         `json:"entityName"`
	EntityPhone string         `json:"entityPhone,omitempty"`
	Quantity    types.Quantity `json:"quantity"`
	Notes       string         `json:"notes,omitempty"`
}

// MovementHistory extracts every movement of one material, newest
// first. A document contributes one line per matching item line.
// Deleted partners show as the placeholder name with no phone.
func MovementHistory(docs []documents.Document, materialID id.ID, lookup func(id.ID) (*partner.Partner, bool)) []MovementLine {
	lines := make([]MovementLine, 0)
	for _, d := range docs {
		for _, item := range d.Items {
			if item.MaterialID != materialID {
				continue
			}
			line := MovementLine{
				DocumentID:  d.ID,
				Date:        d.Date,
				Type:        d.Type,
				ReferenceNo: d.ReferenceNo,
				EntityName:  UnknownPartnerName,
				Quantity:    item.Quantity,
				Notes:       d.Notes,
			}
			if p, ok := lookup(d.EntityID); ok {
				line.EntityName = p.Name
				line.EntityPhone = p.Phone
			}
			lines = append(lines, line)
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date.After(lines[j].Date)
	})

	return lines
}

// LineFilter narrows a movement history.
type LineFilter struct {
	From   *types.Date
	To     *types.Date
	Search string
}

// FilterLines keeps lines within the date range whose reference number
// or entity name contains the search substring.
func FilterLines(lines []MovementLine, f LineFilter) []MovementLine {
	out := make([]MovementLine, 0, len(lines))
	for _, l := range lines {
		if f.From != nil && l.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && l.Date.After(*f.To) {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(l.ReferenceNo, f.Search) &&
			!strings.Contains(l.EntityName, f.Search) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// LineTotals sums the receipt and issue quantities of a history.
// The net is totalIn - totalOut and may be negative.
func LineTotals(lines []MovementLine) (totalIn, totalOut, net types.Quantity) {
	totalIn = types.ZeroQuantity()
	totalOut = types.ZeroQuantity()
	for _, l := range lines {
		switch l.Type {
		case documents.TypeReceipt:
			totalIn = totalIn.Add(l.Quantity)
		case documents.TypeIssue:
			totalOut = totalOut.Add(l.Quantity)
		}
	}
	return totalIn, totalOut, totalIn.Sub(totalOut)
}
