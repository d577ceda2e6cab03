package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/state"
	"makhzan/internal/infrastructure/ai"
	"makhzan/pkg/logger"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	store := state.NewStore(state.DefaultSnapshot())
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Store:     store,
		Materials: material.NewService(store.Materials()),
		Partners:  partner.NewService(store.Partners()),
		Documents: documents.NewService(store.Documents()),
		Gemini:    ai.NewGeminiService("", ""),
		Logger:    log,
	})
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestAPI_DocumentLifecycle(t *testing.T) {
	router := testRouter(t)

	materialID := createdID(t, do(t, router, http.MethodPost, "/api/v1/materials", map[string]any{
		"name":        "أسمنت",
		"sku":         "CEM-01",
		"unit":        "كيس",
		"category":    "بناء",
		"minQuantity": 20,
	}))

	partnerID := createdID(t, do(t, router, http.MethodPost, "/api/v1/partners", map[string]any{
		"name":  "شركة التوريدات",
		"type":  "SUPPLIER",
		"phone": "+966501234567",
	}))

	// Suggested reference before any document exists.
	w := do(t, router, http.MethodGet, "/api/v1/documents/next-ref?type=RECEIPT", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "REC-0001")

	docID := createdID(t, do(t, router, http.MethodPost, "/api/v1/documents", map[string]any{
		"type":     "RECEIPT",
		"entityId": partnerID,
		"date":     "2025-01-10",
		"items": []map[string]any{
			{"materialId": materialID, "quantity": 100},
		},
	}))

	// The reference was auto-assigned.
	w = do(t, router, http.MethodGet, "/api/v1/documents/"+docID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "REC-0001")

	// The balance is derived from the document.
	w = do(t, router, http.MethodGet, "/api/v1/reports/materials", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"currentStock":"100"`)

	// Deleting the document drops the balance back to zero.
	w = do(t, router, http.MethodDelete, "/api/v1/documents/"+docID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/reports/materials", nil)
	require.Contains(t, w.Body.String(), `"currentStock":"0"`)
}

func TestAPI_MaterialHistoryCarriesShareMessage(t *testing.T) {
	router := testRouter(t)

	materialID := createdID(t, do(t, router, http.MethodPost, "/api/v1/materials", map[string]any{
		"name":        "رمل",
		"unit":        "طن",
		"category":    "بناء",
		"minQuantity": 5,
	}))

	partnerID := createdID(t, do(t, router, http.MethodPost, "/api/v1/partners", map[string]any{
		"name":  "مقاولات الشرق",
		"type":  "CUSTOMER",
		"phone": "+966501234567",
	}))

	createdID(t, do(t, router, http.MethodPost, "/api/v1/documents", map[string]any{
		"type":     "ISSUE",
		"entityId": partnerID,
		"date":     "2025-02-01",
		"items": []map[string]any{
			{"materialId": materialID, "quantity": 12.5},
		},
	}))

	w := do(t, router, http.MethodGet, "/api/v1/materials/"+materialID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Lines []struct {
			ReferenceNo  string `json:"referenceNo"`
			ShareMessage string `json:"shareMessage"`
			ShareLink    string `json:"shareLink"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 1)

	line := resp.Lines[0]
	require.Contains(t, line.ShareMessage, "مرحباً مقاولات الشرق،")
	require.Contains(t, line.ShareMessage, "حركة الصنف (رمل) في سند صرف رقم: "+line.ReferenceNo)
	require.Contains(t, line.ShareMessage, "الكمية: 12.5 طن")
	require.Contains(t, line.ShareLink, "https://wa.me/966501234567?text=")
}

func TestAPI_MaterialHistoryShareLinkOmittedWithoutPhone(t *testing.T) {
	router := testRouter(t)

	materialID := createdID(t, do(t, router, http.MethodPost, "/api/v1/materials", map[string]any{
		"name": "أسمنت",
		"unit": "كيس",
	}))

	partnerID := createdID(t, do(t, router, http.MethodPost, "/api/v1/partners", map[string]any{
		"name": "عميل بلا هاتف",
		"type": "CUSTOMER",
	}))

	createdID(t, do(t, router, http.MethodPost, "/api/v1/documents", map[string]any{
		"type":     "ISSUE",
		"entityId": partnerID,
		"date":     "2025-02-01",
		"items": []map[string]any{
			{"materialId": materialID, "quantity": 3},
		},
	}))

	w := do(t, router, http.MethodGet, "/api/v1/materials/"+materialID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "shareMessage")
	require.NotContains(t, w.Body.String(), "shareLink")
}

func TestAPI_ValidationErrors(t *testing.T) {
	router := testRouter(t)

	// Unknown document type.
	w := do(t, router, http.MethodPost, "/api/v1/documents", map[string]any{
		"type":     "TRANSFER",
		"entityId": "not-a-uuid",
		"items":    []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing required material fields.
	w = do(t, router, http.MethodPost, "/api/v1/materials", map[string]any{"sku": "X"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown ids are 404.
	w = do(t, router, http.MethodGet, "/api/v1/materials/00000000-0000-0000-0000-000000000001", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestAPI_LowStockReport(t *testing.T) {
	router := testRouter(t)

	createdID(t, do(t, router, http.MethodPost, "/api/v1/materials", map[string]any{
		"name":        "رمل",
		"unit":        "طن",
		"minQuantity": 5,
	}))

	// No movements yet: stock 0 <= min 5 means OUT_OF_STOCK.
	w := do(t, router, http.MethodGet, "/api/v1/reports/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "OUT_OF_STOCK")
}

func TestAPI_SnapshotExportImport(t *testing.T) {
	router := testRouter(t)

	createdID(t, do(t, router, http.MethodPost, "/api/v1/materials", map[string]any{
		"name": "أسمنت",
		"unit": "كيس",
	}))

	w := do(t, router, http.MethodGet, "/api/v1/snapshot/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.Bytes()

	// Import into a fresh instance.
	other := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import", bytes.NewReader(exported))
	rec := httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	w = do(t, other, http.MethodGet, "/api/v1/materials", nil)
	require.Contains(t, w.Body.String(), "أسمنت")

	// Malformed payloads are rejected outright.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import", bytes.NewReader([]byte("{broken")))
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_IMPORT")
}

func TestAPI_CategoriesSeededAndExtended(t *testing.T) {
	router := testRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "بناء")

	w = do(t, router, http.MethodPost, "/api/v1/categories", map[string]any{"name": "حدادة"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/categories", nil)
	require.Contains(t, w.Body.String(), "حدادة")
}

func TestAPI_Health(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := do(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("path %s", path))
	}
}
