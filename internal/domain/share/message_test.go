package share

import (
	"strings"
	"testing"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/query"
)

func TestDocumentMessage(t *testing.T) {
	cementID := id.New()
	d := documents.Document{
		ID:          id.New(),
		Type:        documents.TypeReceipt,
		EntityID:    id.New(),
		Date:        types.MustParseDate("2025-01-10"),
		ReferenceNo: "REC-0001",
		Notes:       "تسليم عاجل",
		Items: []documents.Item{
			{MaterialID: cementID, Quantity: types.MustQuantity("100")},
		},
	}

	label := func(materialID id.ID) (ItemLabel, bool) {
		if materialID == cementID {
			return ItemLabel{Name: "أسمنت", Unit: "كيس"}, true
		}
		return ItemLabel{}, false
	}

	msg := DocumentMessage(d, "شركة التوريدات", label)

	for _, want := range []string{
		"مرحباً شركة التوريدات،",
		"سند استلام رقم: REC-0001",
		"التاريخ: 2025-01-10",
		"1. أسمنت (100 كيس)",
		"ملاحظات: تسليم عاجل",
		"شكراً لتعاملكم معنا.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\n%s", want, msg)
		}
	}
}

func TestDocumentMessage_NoNotes(t *testing.T) {
	d := documents.Document{
		Type:        documents.TypeIssue,
		Date:        types.MustParseDate("2025-01-10"),
		ReferenceNo: "ISS-0001",
		Items: []documents.Item{
			{MaterialID: id.New(), Quantity: types.MustQuantity("5")},
		},
	}

	msg := DocumentMessage(d, "عميل", func(id.ID) (ItemLabel, bool) { return ItemLabel{}, false })

	if strings.Contains(msg, "ملاحظات") {
		t.Error("notes section must be omitted when empty")
	}
	if !strings.Contains(msg, "سند صرف") {
		t.Error("issue documents must be labeled سند صرف")
	}
	if !strings.Contains(msg, query.UnknownPartnerName) {
		t.Error("deleted material must render the placeholder name")
	}
}

func TestMovementMessage(t *testing.T) {
	line := query.MovementLine{
		Date:        types.MustParseDate("2025-02-01"),
		Type:        documents.TypeIssue,
		ReferenceNo: "ISS-0003",
		EntityName:  "مقاولات الشرق",
		Quantity:    types.MustQuantity("12.5"),
	}

	msg := MovementMessage("رمل", "طن", line)

	for _, want := range []string{
		"مرحباً مقاولات الشرق،",
		"حركة الصنف (رمل) في سند صرف رقم: ISS-0003",
		"الكمية: 12.5 طن",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\n%s", want, msg)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("+966501234567", "مرحبا")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(link, "https://wa.me/966501234567?text=") {
		t.Errorf("plus must be stripped and message attached: %s", link)
	}

	if _, err := WhatsAppLink("", "مرحبا"); err == nil {
		t.Error("empty phone must be rejected")
	}
	if _, err := WhatsAppLink("  ", "مرحبا"); err == nil {
		t.Error("blank phone must be rejected")
	}
}
