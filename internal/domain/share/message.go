// Package share builds the Arabic WhatsApp messages for documents and
// single movements, and the wa.me links carrying them.
package share

import (
	"fmt"
	"strings"

	"makhzan/internal/core/id"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/query"
)

// ItemLabel is the display info of one material line.
type ItemLabel struct {
	Name string
	Unit string
}

func typeLabel(t documents.Type) string {
	if t == documents.TypeReceipt {
		return "سند استلام"
	}
	return "سند صرف"
}

// DocumentMessage renders the full document summary sent to a partner.
// label resolves a material id to its name and unit; deleted materials
// show as the unknown placeholder with no unit.
func DocumentMessage(d documents.Document, entityName string, label func(id.ID) (ItemLabel, bool)) string {
	var b strings.Builder

	fmt.Fprintf(&b, "مرحباً %s،\n", entityName)
	fmt.Fprintf(&b, "إليك تفاصيل %s رقم: %s\n", typeLabel(d.Type), d.ReferenceNo)
	fmt.Fprintf(&b, "التاريخ: %s\n", d.Date)
	b.WriteString("\nالأصناف:\n")

	for i, item := range d.Items {
		l, ok := label(item.MaterialID)
		if !ok {
			l = ItemLabel{Name: query.UnknownPartnerName}
		}
		fmt.Fprintf(&b, "%d. %s (%s %s)\n", i+1, l.Name, item.Quantity, l.Unit)
	}

	if d.Notes != "" {
		fmt.Fprintf(&b, "\nملاحظات: %s", d.Notes)
	}

	b.WriteString("\n\nشكراً لتعاملكم معنا.")
	return b.String()
}

// MovementMessage renders a single movement of one material.
func MovementMessage(materialName, unit string, line query.MovementLine) string {
	var b strings.Builder

	fmt.Fprintf(&b, "مرحباً %s،\n", line.EntityName)
	fmt.Fprintf(&b, "تفاصيل حركة الصنف (%s) في %s رقم: %s\n", materialName, typeLabel(line.Type), line.ReferenceNo)
	fmt.Fprintf(&b, "التاريخ: %s\n", line.Date)
	fmt.Fprintf(&b, "الكمية: %s %s\n", line.Quantity, unit)
	b.WriteString("\nشكراً لتعاملكم معنا.")

	return b.String()
}
