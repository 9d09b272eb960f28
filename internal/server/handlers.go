package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stockscan/internal/model"
	"stockscan/internal/store"
)

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Items()
	if err != nil {
		s.log.Error("list inventory items", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to get inventory items")
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var draft model.ItemDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.store.AddItem(draft)
	switch {
	case errors.Is(err, model.ErrMissingFields),
		errors.Is(err, model.ErrQuantity),
		errors.Is(err, model.ErrDateFormat):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.log.Error("create inventory item", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create inventory item")
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteItem(id); err != nil {
		s.log.Error("delete inventory item", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete inventory item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.store.Units()
	if err != nil {
		s.log.Error("list packaging units", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to get packaging units")
		return
	}
	if units == nil {
		units = []model.PackagingUnit{}
	}
	s.writeJSON(w, http.StatusOK, units)
}

func (s *Server) createUnit(w http.ResponseWriter, r *http.Request) {
	var draft model.UnitDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	unit, err := s.store.AddUnit(draft)
	switch {
	case errors.Is(err, store.ErrDuplicateUnit):
		s.writeError(w, http.StatusBadRequest, store.MsgDuplicateUnit)
		return
	case errors.Is(err, model.ErrUnitName):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.log.Error("create packaging unit", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create packaging unit")
		return
	}
	s.writeJSON(w, http.StatusCreated, unit)
}

func (s *Server) deleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	err := s.store.DeleteUnit(id)
	switch {
	case errors.Is(err, store.ErrProtectedUnit):
		s.writeError(w, http.StatusBadRequest, store.MsgProtectedUnit)
		return
	case err != nil:
		s.log.Error("delete packaging unit", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete packaging unit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment. A non-numeric id is a 400.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
