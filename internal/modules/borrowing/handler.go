package borrowing

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freshline/supply-backend/internal/httpx"
	"github.com/freshline/supply-backend/internal/validate"
)

// Handler exposes borrowing HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/borrowings", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.listByShop) // ?shop_id=...
		r.Post("/{id}/approval", h.approve)
		r.Post("/{id}/rejection", h.reject)
	})
}

type createBorrowingRequest struct {
	FruitID        int64 `json:"fruit_id" validate:"required"`
	LenderShopID   int64 `json:"lender_shop_id" validate:"required"`
	BorrowerShopID int64 `json:"borrower_shop_id" validate:"required"`
	Quantity       int   `json:"quantity" validate:"required,gt=0"`
	// Direct transfers the stock immediately instead of waiting for the
	// lender shop's approval.
	Direct bool `json:"direct"`
}

type decisionRequest struct {
	ShopID int64 `json:"shop_id" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[createBorrowingRequest](w, r)
	if !ok {
		return
	}

	var (
		b   *Borrowing
		err error
	)
	if req.Direct {
		b, err = h.service.Direct(r.Context(), req.FruitID, req.LenderShopID, req.BorrowerShopID, req.Quantity)
	} else {
		b, err = h.service.Request(r.Context(), req.FruitID, req.LenderShopID, req.BorrowerShopID, req.Quantity)
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	req, ok := validate.Request[decisionRequest](w, r)
	if !ok {
		return
	}
	b, err := h.service.Approve(r.Context(), id, req.ShopID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	req, ok := validate.Request[decisionRequest](w, r)
	if !ok {
		return
	}
	b, err := h.service.Reject(r.Context(), id, req.ShopID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) listByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(r.URL.Query().Get("shop_id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "shop_id is required")
		return
	}
	borrowings, err := h.service.ListByShop(r.Context(), shopID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, borrowings)
}

func pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid borrowing id")
		return uuid.Nil, false
	}
	return id, true
}
