package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/freshline/supply-backend/internal/httpx"
	"github.com/freshline/supply-backend/internal/modules/reservation"
)

const dateLayout = "2006-01-02"

// Handler exposes analytics HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/demand", h.demand)      // ?status=&dimension=&from=&to=
		r.Get("/seasons", h.seasonal)   // ?year=
		r.Get("/forecast", h.forecast)  // ?fruit_id=&from=&to=
	})
}

func (h *Handler) demand(w http.ResponseWriter, r *http.Request) {
	status, err := reservation.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	dim, err := ParseDimension(r.URL.Query().Get("dimension"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	rows, err := h.service.Demand(r.Context(), status, dim, from, to)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) seasonal(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "year is required")
		return
	}
	totals, err := h.service.SeasonalConsumption(r.Context(), year)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	fruitID, err := strconv.ParseInt(r.URL.Query().Get("fruit_id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "fruit_id is required")
		return
	}
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	f, err := h.service.Forecast(r.Context(), fruitID, from, to)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func dateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "from must be a date (YYYY-MM-DD)")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "to must be a date (YYYY-MM-DD)")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
