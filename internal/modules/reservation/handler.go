package reservation

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/httpx"
	"github.com/freshline/supply-backend/internal/validate"
)

// Handler exposes reservation workflow HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/reservations", func(r chi.Router) {
		r.Post("/", h.reserve)
		r.Get("/", h.listByShop) // ?shop_id=...
		r.Get("/needs", h.needsByCountry)
		r.Post("/needs/approval", h.approveNeeds)
		r.Post("/deliveries", h.arrangeDelivery)
		r.Get("/{id}", h.get)
		r.Post("/{id}/checkout", h.checkout)
	})
}

type reserveRequest struct {
	FruitID  int64 `json:"fruit_id" validate:"required"`
	ShopID   int64 `json:"shop_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

type approveNeedsRequest struct {
	FruitID int64  `json:"fruit_id" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type arrangeDeliveryRequest struct {
	FruitID         int64  `json:"fruit_id" validate:"required"`
	FromWarehouseID int64  `json:"from_warehouse_id" validate:"required"`
	Country         string `json:"country" validate:"required"`
}

type checkoutRequest struct {
	WarehouseID int64 `json:"warehouse_id" validate:"required"`
}

func (h *Handler) reserve(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[reserveRequest](w, r)
	if !ok {
		return
	}
	res, err := h.service.Reserve(r.Context(), req.FruitID, req.ShopID, req.Quantity)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}

func (h *Handler) needsByCountry(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	lines, err := h.service.NeedsByCountry(r.Context(), country)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lines)
}

func (h *Handler) approveNeeds(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[approveNeedsRequest](w, r)
	if !ok {
		return
	}
	moved, err := h.service.ApproveNeeds(r.Context(), req.FruitID, req.Country)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"approved": moved})
}

func (h *Handler) arrangeDelivery(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[arrangeDeliveryRequest](w, r)
	if !ok {
		return
	}
	d, err := h.service.ArrangeDelivery(r.Context(), req.FruitID, req.FromWarehouseID, req.Country)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	req, ok := validate.Request[checkoutRequest](w, r)
	if !ok {
		return
	}
	res, err := h.service.Checkout(r.Context(), id, req.WarehouseID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	res, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) listByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(r.URL.Query().Get("shop_id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "shop_id is required")
		return
	}
	reservations, err := h.service.ListByShop(r.Context(), shopID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reservations)
}

func pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid reservation id")
		return uuid.Nil, false
	}
	return id, true
}
