package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stockscan/internal/model"
	"stockscan/internal/store"
)

func newTestServer(t *testing.T, opts store.Options) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(store.NewMemory(opts), nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func doDelete(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestInventoryCreateAndList(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})

	resp := postJSON(t, ts.URL+"/api/inventory", model.ItemDraft{
		ProductNumber:  "8801234567",
		PackagingUnit:  "카톤",
		Quantity:       5,
		ExpirationDate: "20251201",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201", resp.StatusCode)
	}
	var created model.InventoryItem
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Errorf("server should assign id and createdAt: %+v", created)
	}

	listResp, err := http.Get(ts.URL + "/api/inventory")
	if err != nil {
		t.Fatal(err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("list status: got %d", listResp.StatusCode)
	}
	var items []model.InventoryItem
	if err := json.NewDecoder(listResp.Body).Decode(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ProductNumber != "8801234567" {
		t.Errorf("list: got %+v", items)
	}
}

func TestInventoryListEmptyIsArray(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})
	resp, err := http.Get(ts.URL + "/api/inventory")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if got := buf.String(); got != "[]\n" {
		t.Errorf("empty list body: got %q, want []", got)
	}
}

func TestInventoryCreateRejectsInvalidDraft(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})

	tests := []struct {
		name  string
		draft model.ItemDraft
	}{
		{"missing product", model.ItemDraft{PackagingUnit: "카톤", Quantity: 1}},
		{"zero quantity", model.ItemDraft{ProductNumber: "1234", PackagingUnit: "카톤"}},
		{"bad date", model.ItemDraft{ProductNumber: "1234", PackagingUnit: "카톤", Quantity: 1, ExpirationDate: "2025-12-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/inventory", tt.draft)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestInventoryCreateRejectsMalformedJSON(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})
	resp, err := http.Post(ts.URL+"/api/inventory", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestInventoryDelete(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})
	resp := postJSON(t, ts.URL+"/api/inventory", model.ItemDraft{
		ProductNumber: "1234", PackagingUnit: "카톤", Quantity: 1,
	})
	var created model.InventoryItem
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	del := doDelete(t, fmt.Sprintf("%s/api/inventory/%d", ts.URL, created.ID))
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("delete status: got %d, want 204", del.StatusCode)
	}

	// Idempotent: deleting again still succeeds.
	again := doDelete(t, fmt.Sprintf("%s/api/inventory/%d", ts.URL, created.ID))
	again.Body.Close()
	if again.StatusCode != http.StatusNoContent {
		t.Errorf("repeat delete status: got %d, want 204", again.StatusCode)
	}
}

func TestInventoryDeleteNonNumericID(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})
	resp := doDelete(t, ts.URL+"/api/inventory/abc")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestPackagingUnitsDefaultsAndDuplicate(t *testing.T) {
	_, ts := newTestServer(t, store.Options{})

	resp, err := http.Get(ts.URL + "/api/packaging-units")
	if err != nil {
		t.Fatal(err)
	}
	var units []model.PackagingUnit
	json.NewDecoder(resp.Body).Decode(&units)
	resp.Body.Close()
	if len(units) != len(model.DefaultUnits) {
		t.Fatalf("default units: got %d, want %d", len(units), len(model.DefaultUnits))
	}

	dup := postJSON(t, ts.URL+"/api/packaging-units", model.UnitDraft{Name: "카톤"})
	defer dup.Body.Close()
	if dup.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate create status: got %d, want 400", dup.StatusCode)
	}
	var apiErr map[string]string
	json.NewDecoder(dup.Body).Decode(&apiErr)
	if apiErr["message"] != store.MsgDuplicateUnit {
		t.Errorf("duplicate message: got %q", apiErr["message"])
	}

	ok := postJSON(t, ts.URL+"/api/packaging-units", model.UnitDraft{Name: "파레트"})
	ok.Body.Close()
	if ok.StatusCode != http.StatusCreated {
		t.Errorf("unique create status: got %d, want 201", ok.StatusCode)
	}
}

func TestPackagingUnitDeleteProtected(t *testing.T) {
	_, ts := newTestServer(t, store.Options{ProtectDefaults: true})

	resp, _ := http.Get(ts.URL + "/api/packaging-units")
	var units []model.PackagingUnit
	json.NewDecoder(resp.Body).Decode(&units)
	resp.Body.Close()

	del := doDelete(t, fmt.Sprintf("%s/api/packaging-units/%d", ts.URL, units[0].ID))
	defer del.Body.Close()
	if del.StatusCode != http.StatusBadRequest {
		t.Errorf("protected delete status: got %d, want 400", del.StatusCode)
	}
}

func TestRemoteStoreAgainstServer(t *testing.T) {
	_, ts := newTestServer(t, store.Options{ProtectDefaults: true})
	remote := store.NewRemote(ts.URL)

	item, err := remote.AddItem(model.ItemDraft{
		ProductNumber: "8801234567", PackagingUnit: "카톤", Quantity: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	items, err := remote.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Errorf("remote items: %+v", items)
	}

	if _, err := remote.AddUnit(model.UnitDraft{Name: "카톤"}); err != store.ErrDuplicateUnit {
		t.Errorf("duplicate via remote: got %v, want ErrDuplicateUnit", err)
	}

	units, err := remote.Units()
	if err != nil {
		t.Fatal(err)
	}
	if err := remote.DeleteUnit(units[0].ID); err != store.ErrProtectedUnit {
		t.Errorf("protected delete via remote: got %v, want ErrProtectedUnit", err)
	}

	if err := remote.DeleteItem(item.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = remote.Items()
	if len(items) != 0 {
		t.Errorf("items after delete: %+v", items)
	}
}
