package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/freshline/supply-backend/internal/httpx"
	"github.com/freshline/supply-backend/internal/validate"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Post("/fruits", h.createFruit)
		r.Get("/fruits", h.listFruits)
		r.Get("/fruits/{id}", h.getFruit)

		r.Post("/shops", h.createShop)
		r.Get("/shops", h.listShops)
		r.Get("/shops/{id}", h.getShop)

		r.Post("/warehouses", h.createWarehouse)
		r.Get("/warehouses", h.listWarehouses)
		r.Get("/warehouses/{id}", h.getWarehouse)
	})
}

type createFruitRequest struct {
	Name          string `json:"name" validate:"required"`
	SourceCountry string `json:"source_country" validate:"required"`
}

type createShopRequest struct {
	Name    string `json:"name" validate:"required"`
	City    string `json:"city"`
	Country string `json:"country" validate:"required"`
}

type createWarehouseRequest struct {
	Name     string `json:"name" validate:"required"`
	City     string `json:"city"`
	Country  string `json:"country" validate:"required"`
	IsSource bool   `json:"is_source"`
}

func (h *Handler) createFruit(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[createFruitRequest](w, r)
	if !ok {
		return
	}
	f, err := h.service.CreateFruit(r.Context(), req.Name, req.SourceCountry)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}

func (h *Handler) getFruit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	f, err := h.service.GetFruit(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) listFruits(w http.ResponseWriter, r *http.Request) {
	fruits, err := h.service.ListFruits(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, fruits)
}

func (h *Handler) createShop(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[createShopRequest](w, r)
	if !ok {
		return
	}
	s, err := h.service.CreateShop(r.Context(), req.Name, req.City, req.Country)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, s)
}

func (h *Handler) getShop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s, err := h.service.GetShop(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

func (h *Handler) listShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.service.ListShops(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shops)
}

func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Request[createWarehouseRequest](w, r)
	if !ok {
		return
	}
	wh, err := h.service.CreateWarehouse(r.Context(), req.Name, req.City, req.Country, req.IsSource)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, wh)
}

func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	wh, err := h.service.GetWarehouse(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, wh)
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.service.ListWarehouses(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, warehouses)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
