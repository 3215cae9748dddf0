package inventory

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/freshline/supply-backend/internal/httpx"
	"github.com/freshline/supply-backend/internal/validate"
)

// Handler exposes stock ledger HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventory/{kind}/{location_id}", func(r chi.Router) {
		r.Get("/", h.listAt)
		r.Get("/fruits/{fruit_id}", h.quantity)
		r.Put("/fruits/{fruit_id}", h.set)
		r.Post("/fruits/{fruit_id}/receipts", h.receive)
	})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type receiveRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func (h *Handler) quantity(w http.ResponseWriter, r *http.Request) {
	loc, fruitID, ok := pathTarget(w, r)
	if !ok {
		return
	}
	qty, err := h.service.Quantity(r.Context(), fruitID, loc)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"fruit_id": fruitID,
		"location": loc,
		"quantity": qty,
	})
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	loc, fruitID, ok := pathTarget(w, r)
	if !ok {
		return
	}
	req, ok := validate.Request[setQuantityRequest](w, r)
	if !ok {
		return
	}
	if err := h.service.Set(r.Context(), fruitID, loc, req.Quantity); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"fruit_id": fruitID,
		"location": loc,
		"quantity": req.Quantity,
	})
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	loc, fruitID, ok := pathTarget(w, r)
	if !ok {
		return
	}
	req, ok := validate.Request[receiveRequest](w, r)
	if !ok {
		return
	}
	qty, err := h.service.Receive(r.Context(), fruitID, loc, req.Quantity)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"fruit_id": fruitID,
		"location": loc,
		"quantity": qty,
	})
}

func (h *Handler) listAt(w http.ResponseWriter, r *http.Request) {
	loc, ok := pathLocation(w, r)
	if !ok {
		return
	}
	records, err := h.service.ListAt(r.Context(), loc)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

func pathLocation(w http.ResponseWriter, r *http.Request) (Location, bool) {
	kind, err := ParseLocationKind(chi.URLParam(r, "kind"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return Location{}, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "location_id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid location_id")
		return Location{}, false
	}
	return Location{Kind: kind, ID: id}, true
}

func pathTarget(w http.ResponseWriter, r *http.Request) (Location, int64, bool) {
	loc, ok := pathLocation(w, r)
	if !ok {
		return Location{}, 0, false
	}
	fruitID, err := strconv.ParseInt(chi.URLParam(r, "fruit_id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid fruit_id")
		return Location{}, 0, false
	}
	return loc, fruitID, true
}
