package store

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"stockscan/internal/model"
)

// Remote is a Store that speaks the stockscand REST API. Validation still
// runs locally so the user gets field-level errors without a round trip; the
// server re-validates on its side.
type Remote struct {
	client *resty.Client
}

var _ Store = (*Remote)(nil)

// NewRemote creates a Store talking to the API server at baseURL
// (e.g. "http://192.168.0.10:8080").
func NewRemote(baseURL string) *Remote {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Remote{client: client}
}

// apiError mirrors the server's JSON error body.
type apiError struct {
	Message string `json:"message"`
}

// opError wraps a transport or server failure with the operation that
// failed, so the UI can show "save failed, retry" vs "load failed, retry".
func opError(op string, err error) error {
	return fmt.Errorf("%s failed, retry: %w", op, err)
}

func (r *Remote) Items() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	resp, err := r.client.R().SetResult(&items).Get("/api/inventory")
	if err != nil {
		return nil, opError("load", err)
	}
	if resp.IsError() {
		return nil, opError("load", fmt.Errorf("server returned %s", resp.Status()))
	}
	return items, nil
}

func (r *Remote) AddItem(draft model.ItemDraft) (model.InventoryItem, error) {
	if err := model.ValidateItemDraft(draft); err != nil {
		return model.InventoryItem{}, err
	}

	var item model.InventoryItem
	var apiErr apiError
	resp, err := r.client.R().
		SetBody(draft).
		SetResult(&item).
		SetError(&apiErr).
		Post("/api/inventory")
	if err != nil {
		return model.InventoryItem{}, opError("save", err)
	}
	if resp.IsError() {
		return model.InventoryItem{}, opError("save", serverMessage(resp.Status(), apiErr))
	}
	return item, nil
}

func (r *Remote) DeleteItem(id int64) error {
	resp, err := r.client.R().Delete(fmt.Sprintf("/api/inventory/%d", id))
	if err != nil {
		return opError("delete", err)
	}
	if resp.IsError() {
		return opError("delete", fmt.Errorf("server returned %s", resp.Status()))
	}
	return nil
}

// ClearItems deletes every record one by one; the API has no bulk endpoint.
func (r *Remote) ClearItems() error {
	items, err := r.Items()
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := r.DeleteItem(it.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Remote) Units() ([]model.PackagingUnit, error) {
	var units []model.PackagingUnit
	resp, err := r.client.R().SetResult(&units).Get("/api/packaging-units")
	if err != nil {
		return nil, opError("load", err)
	}
	if resp.IsError() {
		return nil, opError("load", fmt.Errorf("server returned %s", resp.Status()))
	}
	return units, nil
}

func (r *Remote) AddUnit(draft model.UnitDraft) (model.PackagingUnit, error) {
	name := normalizeUnitName(draft.Name)
	if err := model.ValidateUnitName(name); err != nil {
		return model.PackagingUnit{}, err
	}

	var unit model.PackagingUnit
	var apiErr apiError
	resp, err := r.client.R().
		SetBody(model.UnitDraft{Name: name}).
		SetResult(&unit).
		SetError(&apiErr).
		Post("/api/packaging-units")
	if err != nil {
		return model.PackagingUnit{}, opError("save", err)
	}
	if resp.StatusCode() == http.StatusBadRequest && apiErr.Message == MsgDuplicateUnit {
		return model.PackagingUnit{}, ErrDuplicateUnit
	}
	if resp.IsError() {
		return model.PackagingUnit{}, opError("save", serverMessage(resp.Status(), apiErr))
	}
	return unit, nil
}

func (r *Remote) DeleteUnit(id int64) error {
	var apiErr apiError
	resp, err := r.client.R().
		SetError(&apiErr).
		Delete(fmt.Sprintf("/api/packaging-units/%d", id))
	if err != nil {
		return opError("delete", err)
	}
	if resp.StatusCode() == http.StatusBadRequest && apiErr.Message == MsgProtectedUnit {
		return ErrProtectedUnit
	}
	if resp.IsError() {
		return opError("delete", fmt.Errorf("server returned %s", resp.Status()))
	}
	return nil
}

func serverMessage(status string, apiErr apiError) error {
	if apiErr.Message != "" {
		return fmt.Errorf("server returned %s: %s", status, apiErr.Message)
	}
	return fmt.Errorf("server returned %s", status)
}

// Error messages the server emits for conditions the client distinguishes.
const (
	MsgDuplicateUnit = "packaging unit already exists"
	MsgProtectedUnit = "default packaging unit cannot be deleted"
)
