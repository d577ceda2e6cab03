package query

import (
	"testing"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
)

func testDoc(docType documents.Type, date, ref string, entityID id.ID, items ...documents.Item) documents.Document {
	return documents.Document{
		ID:          id.New(),
		Type:        docType,
		EntityID:    entityID,
		Date:        types.MustParseDate(date),
		ReferenceNo: ref,
		Items:       items,
	}
}

func TestByDateRange(t *testing.T) {
	d := testDoc(documents.TypeReceipt, "2025-01-15", "REC-0001", id.New())

	from := types.MustParseDate("2025-01-15")
	to := types.MustParseDate("2025-01-15")

	if !ByDateRange(&from, &to)(d) {
		t.Error("boundary dates must be inclusive")
	}

	after := types.MustParseDate("2025-01-16")
	if ByDateRange(&after, nil)(d) {
		t.Error("document before the lower bound must not match")
	}

	if !ByDateRange(nil, nil)(d) {
		t.Error("open range must match everything")
	}
}

func TestBySearch(t *testing.T) {
	supplier := id.New()
	names := func(partnerID id.ID) string {
		if partnerID == supplier {
			return "مؤسسة البناء الحديث"
		}
		return ""
	}

	d := testDoc(documents.TypeReceipt, "2025-01-01", "REC-0042", supplier)

	if !BySearch("REC-0042", names)(d) {
		t.Error("full reference must match")
	}
	if !BySearch("0042", names)(d) {
		t.Error("reference substring must match")
	}
	if !BySearch("البناء", names)(d) {
		t.Error("partner name substring must match")
	}
	if BySearch("غير موجود", names)(d) {
		t.Error("unrelated query must not match")
	}
	if !BySearch("", names)(d) {
		t.Error("empty query must match everything")
	}

	orphan := testDoc(documents.TypeReceipt, "2025-01-01", "REC-0001", id.New())
	if BySearch("مؤسسة", names)(orphan) {
		t.Error("deleted partner must only match via reference")
	}
}

func TestByPartnerAndByType(t *testing.T) {
	supplier := id.New()
	d := testDoc(documents.TypeIssue, "2025-01-01", "ISS-0001", supplier)

	if !ByPartner(&supplier)(d) {
		t.Error("matching partner must pass")
	}
	other := id.New()
	if ByPartner(&other)(d) {
		t.Error("different partner must not pass")
	}
	if !ByPartner(nil)(d) {
		t.Error("nil partner filter must pass everything")
	}

	issue := documents.TypeIssue
	receipt := documents.TypeReceipt
	if !ByType(&issue)(d) || ByType(&receipt)(d) {
		t.Error("type filter mismatch")
	}
	if !ByType(nil)(d) {
		t.Error("nil type filter must pass everything")
	}
}

func TestByCategory(t *testing.T) {
	cementID := id.New()
	sandID := id.New()
	deletedID := id.New()

	categoryOf := func(materialID id.ID) (string, bool) {
		switch materialID {
		case cementID:
			return "بناء", true
		case sandID:
			return "بناء", true
		}
		return "", false
	}

	d := testDoc(documents.TypeReceipt, "2025-01-01", "REC-0001", id.New(),
		documents.Item{MaterialID: cementID, Quantity: types.MustQuantity("5")},
		documents.Item{MaterialID: deletedID, Quantity: types.MustQuantity("1")},
	)

	if !ByCategory("بناء", categoryOf)(d) {
		t.Error("document with a matching line must pass")
	}
	if ByCategory("كهرباء", categoryOf)(d) {
		t.Error("document with no matching line must not pass")
	}
	if !ByCategory("", categoryOf)(d) {
		t.Error("empty category must pass everything")
	}

	orphan := testDoc(documents.TypeReceipt, "2025-01-01", "REC-0002", id.New(),
		documents.Item{MaterialID: deletedID, Quantity: types.MustQuantity("1")},
	)
	if ByCategory("بناء", categoryOf)(orphan) {
		t.Error("deleted material lines never match a category")
	}
}

func TestAnd_OrderIndependent(t *testing.T) {
	supplier := id.New()
	issue := documents.TypeIssue
	d := testDoc(documents.TypeIssue, "2025-01-01", "ISS-0001", supplier)

	a := And(ByPartner(&supplier), ByType(&issue))
	b := And(ByType(&issue), ByPartner(&supplier))
	if a(d) != b(d) {
		t.Error("predicate order must not change the outcome")
	}
}

func TestApply_SortsDateDescendingStable(t *testing.T) {
	e := id.New()
	newest := testDoc(documents.TypeReceipt, "2025-03-01", "REC-0003", e)
	tieFirst := testDoc(documents.TypeReceipt, "2025-02-01", "REC-0002", e)
	tieSecond := testDoc(documents.TypeReceipt, "2025-02-01", "REC-0001", e)
	oldest := testDoc(documents.TypeReceipt, "2025-01-01", "REC-0000", e)

	out := Apply(
		[]documents.Document{tieFirst, oldest, newest, tieSecond},
		func(documents.Document) bool { return true },
	)

	wantRefs := []string{"REC-0003", "REC-0002", "REC-0001", "REC-0000"}
	for i, ref := range wantRefs {
		if out[i].ReferenceNo != ref {
			t.Errorf("out[%d] = %s, want %s", i, out[i].ReferenceNo, ref)
		}
	}
}

func TestMovementHistory(t *testing.T) {
	cementID := id.New()
	supplier := partner.Partner{
		ID:    id.New(),
		Name:  "شركة التوريدات",
		Type:  partner.TypeSupplier,
		Phone: "+966501234567",
	}

	lookup := func(partnerID id.ID) (*partner.Partner, bool) {
		if partnerID == supplier.ID {
			return &supplier, true
		}
		return nil, false
	}

	docs := []documents.Document{
		{
			ID: id.New(), Type: documents.TypeReceipt, EntityID: supplier.ID,
			Date: types.MustParseDate("2025-01-10"), ReferenceNo: "REC-0001",
			Items: []documents.Item{{MaterialID: cementID, Quantity: types.MustQuantity("100")}},
		},
		{
			ID: id.New(), Type: documents.TypeIssue, EntityID: id.New(),
			Date: types.MustParseDate("2025-01-20"), ReferenceNo: "ISS-0001",
			Items: []documents.Item{{MaterialID: cementID, Quantity: types.MustQuantity("30")}},
		},
		{
			ID: id.New(), Type: documents.TypeReceipt, EntityID: supplier.ID,
			Date: types.MustParseDate("2025-01-05"), ReferenceNo: "REC-0002",
			Items: []documents.Item{{MaterialID: id.New(), Quantity: types.MustQuantity("7")}},
		},
	}

	lines := MovementHistory(docs, cementID, lookup)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	// Newest first.
	if lines[0].ReferenceNo != "ISS-0001" {
		t.Errorf("lines[0] = %s, want ISS-0001", lines[0].ReferenceNo)
	}

	// Deleted partner shows the placeholder.
	if lines[0].EntityName != UnknownPartnerName {
		t.Errorf("entityName = %q, want %q", lines[0].EntityName, UnknownPartnerName)
	}
	if lines[1].EntityName != "شركة التوريدات" {
		t.Errorf("entityName = %q, want supplier name", lines[1].EntityName)
	}

	totalIn, totalOut, net := LineTotals(lines)
	if !totalIn.Equal(types.MustQuantity("100")) || !totalOut.Equal(types.MustQuantity("30")) {
		t.Errorf("totals = in %s out %s, want 100/30", totalIn, totalOut)
	}
	if !net.Equal(types.MustQuantity("70")) {
		t.Errorf("net = %s, want 70", net)
	}
}

func TestFilterLines(t *testing.T) {
	lines := []MovementLine{
		{Date: types.MustParseDate("2025-01-10"), ReferenceNo: "REC-0001", EntityName: "مورد أ"},
		{Date: types.MustParseDate("2025-02-10"), ReferenceNo: "ISS-0001", EntityName: "عميل ب"},
	}

	from := types.MustParseDate("2025-02-01")
	got := FilterLines(lines, LineFilter{From: &from})
	if len(got) != 1 || got[0].ReferenceNo != "ISS-0001" {
		t.Errorf("date filter failed: %+v", got)
	}

	got = FilterLines(lines, LineFilter{Search: "مورد"})
	if len(got) != 1 || got[0].ReferenceNo != "REC-0001" {
		t.Errorf("search filter failed: %+v", got)
	}
}
