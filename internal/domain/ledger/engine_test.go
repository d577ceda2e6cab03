package ledger

import (
	"testing"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/documents"
)

func mat(name string, min string) material.Material {
	return material.Material{
		ID:          id.New(),
		Name:        name,
		Unit:        "كيس",
		MinQuantity: types.MustQuantity(min),
	}
}

func doc(t documents.Type, date string, items ...documents.Item) documents.Document {
	return documents.Document{
		ID:       id.New(),
		Type:     t,
		EntityID: id.New(),
		Date:     types.MustParseDate(date),
		Items:    items,
	}
}

func item(m material.Material, qty string) documents.Item {
	return documents.Item{MaterialID: m.ID, Quantity: types.MustQuantity(qty)}
}

func TestBuildReports_BalanceIsFoldOfDocuments(t *testing.T) {
	cement := mat("أسمنت", "20")

	docs := []documents.Document{
		doc(documents.TypeReceipt, "2025-01-10", item(cement, "100")),
		doc(documents.TypeIssue, "2025-01-12", item(cement, "40")),
		doc(documents.TypeIssue, "2025-01-15", item(cement, "25.5")),
	}

	reports := BuildReports([]material.Material{cement}, docs)
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	r := reports[0]
	if !r.TotalIn.Equal(types.MustQuantity("100")) {
		t.Errorf("totalIn = %s, want 100", r.TotalIn)
	}
	if !r.TotalOut.Equal(types.MustQuantity("65.5")) {
		t.Errorf("totalOut = %s, want 65.5", r.TotalOut)
	}
	if !r.CurrentStock.Equal(types.MustQuantity("34.5")) {
		t.Errorf("currentStock = %s, want 34.5", r.CurrentStock)
	}
	if r.LastMovement == nil || r.LastMovement.String() != "2025-01-15" {
		t.Errorf("lastMovement = %v, want 2025-01-15", r.LastMovement)
	}
}

func TestBuildReports_DeleteDocumentChangesBalance(t *testing.T) {
	cement := mat("أسمنت", "10")

	receipt := doc(documents.TypeReceipt, "2025-02-01", item(cement, "100"))
	issue := doc(documents.TypeIssue, "2025-02-05", item(cement, "160"))

	reports := BuildReports([]material.Material{cement}, []documents.Document{receipt, issue})
	if !reports[0].CurrentStock.Equal(types.MustQuantity("-60")) {
		t.Fatalf("currentStock = %s, want -60", reports[0].CurrentStock)
	}

	// Removing the receipt shifts the derived balance further down.
	reports = BuildReports([]material.Material{cement}, []documents.Document{issue})
	if !reports[0].CurrentStock.Equal(types.MustQuantity("-160")) {
		t.Fatalf("after delete currentStock = %s, want -160", reports[0].CurrentStock)
	}
}

func TestBuildReports_MaterialWithoutMovementsReportsZero(t *testing.T) {
	idle := mat("مادة خاملة", "5")

	reports := BuildReports([]material.Material{idle}, nil)
	r := reports[0]
	if !r.CurrentStock.IsZero() || !r.TotalIn.IsZero() || !r.TotalOut.IsZero() {
		t.Errorf("expected zero totals, got in=%s out=%s stock=%s", r.TotalIn, r.TotalOut, r.CurrentStock)
	}
	if r.LastMovement != nil {
		t.Errorf("lastMovement = %v, want nil", r.LastMovement)
	}
}

func TestBuildReports_DanglingMaterialReferenceIgnored(t *testing.T) {
	cement := mat("أسمنت", "0")
	deleted := mat("محذوفة", "0")

	docs := []documents.Document{
		doc(documents.TypeReceipt, "2025-03-01", item(cement, "10"), item(deleted, "99")),
	}

	// Catalog only contains cement; the deleted material's line must
	// not surface anywhere.
	reports := BuildReports([]material.Material{cement}, docs)
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if !reports[0].CurrentStock.Equal(types.MustQuantity("10")) {
		t.Errorf("currentStock = %s, want 10", reports[0].CurrentStock)
	}
}

func TestBuildReportsFiltered_DateAndPartner(t *testing.T) {
	cement := mat("أسمنت", "0")
	supplier := id.New()

	inRange := doc(documents.TypeReceipt, "2025-04-10", item(cement, "50"))
	inRange.EntityID = supplier
	before := doc(documents.TypeReceipt, "2025-03-01", item(cement, "30"))
	before.EntityID = supplier
	otherPartner := doc(documents.TypeReceipt, "2025-04-12", item(cement, "70"))

	from := types.MustParseDate("2025-04-01")
	to := types.MustParseDate("2025-04-30")

	reports := BuildReportsFiltered(
		[]material.Material{cement},
		[]documents.Document{inRange, before, otherPartner},
		Filter{From: &from, To: &to, PartnerID: &supplier},
	)

	if !reports[0].TotalIn.Equal(types.MustQuantity("50")) {
		t.Errorf("totalIn = %s, want 50", reports[0].TotalIn)
	}
}

func TestBuildReportsFiltered_BoundsAreInclusive(t *testing.T) {
	cement := mat("أسمنت", "0")

	onFrom := doc(documents.TypeReceipt, "2025-05-01", item(cement, "1"))
	onTo := doc(documents.TypeReceipt, "2025-05-31", item(cement, "2"))

	from := types.MustParseDate("2025-05-01")
	to := types.MustParseDate("2025-05-31")

	reports := BuildReportsFiltered(
		[]material.Material{cement},
		[]documents.Document{onFrom, onTo},
		Filter{From: &from, To: &to},
	)

	if !reports[0].TotalIn.Equal(types.MustQuantity("3")) {
		t.Errorf("totalIn = %s, want 3 (both boundary days included)", reports[0].TotalIn)
	}
}

func TestFlatten_OrderAndIDs(t *testing.T) {
	cement := mat("أسمنت", "0")
	sand := mat("رمل", "0")

	older := doc(documents.TypeReceipt, "2025-01-01", item(cement, "5"))
	newer := doc(documents.TypeIssue, "2025-01-02", item(cement, "1"), item(sand, "2"))

	txs := Flatten([]documents.Document{older, newer})
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}

	if !txs[0].Date.After(txs[2].Date) {
		t.Errorf("transactions not sorted date descending")
	}
	if txs[0].ID != newer.ID.String()+"-0" || txs[1].ID != newer.ID.String()+"-1" {
		t.Errorf("line ids = %s, %s; want docID-0, docID-1", txs[0].ID, txs[1].ID)
	}
}

func TestFlatten_EqualDatesKeepStoreOrder(t *testing.T) {
	cement := mat("أسمنت", "0")

	first := doc(documents.TypeReceipt, "2025-06-01", item(cement, "1"))
	second := doc(documents.TypeIssue, "2025-06-01", item(cement, "2"))

	txs := Flatten([]documents.Document{first, second})
	if txs[0].ID != first.ID.String()+"-0" {
		t.Errorf("stable sort broken: got %s first", txs[0].ID)
	}
}
