package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/services/metrics"
)

// priceMeta is the cache metadata attached to price-bearing responses.
type priceMeta struct {
	State     models.PriceState `json:"state"`
	FetchedAt time.Time         `json:"fetched_at"`
	Notice    string            `json:"notice,omitempty"`
}

func meta(snap models.PriceSnapshot) priceMeta {
	return priceMeta{State: snap.State, FetchedAt: snap.FetchedAt, Notice: snap.Notice}
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleAssets handles GET /api/assets: the static catalog plus the
// state derived from the current ledger.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assets": s.app.Ledger.Catalog(),
		"states": s.app.Ledger.Derive(),
	})
}

// portfolioResponse carries the full computed metric set plus price
// cache metadata.
type portfolioResponse struct {
	models.PortfolioMetrics
	Prices priceMeta `json:"prices"`
}

// handlePortfolio handles GET /api/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	states := s.app.Ledger.Derive()
	snap := s.app.PriceCache.Snapshot(r.Context(), s.app.PortfolioTickers())

	WriteJSON(w, http.StatusOK, portfolioResponse{
		PortfolioMetrics: metrics.Compute(states, snap),
		Prices:           meta(snap),
	})
}

// handleSeries handles GET /api/portfolio/series.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	states := s.app.Ledger.Derive()
	snap := s.app.PriceCache.Snapshot(r.Context(), s.app.PortfolioTickers())

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"series": metrics.TimeSeries(states, snap),
		"prices": meta(snap),
	})
}

// handleChart handles GET /api/portfolio/chart: the series rendered as a
// PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	states := s.app.Ledger.Derive()
	snap := s.app.PriceCache.Snapshot(r.Context(), s.app.PortfolioTickers())
	series := metrics.TimeSeries(states, snap)

	png, err := metrics.RenderChart(series)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleOperations handles GET and POST /api/operations.
func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"operations": s.app.Ledger.Operations(),
		})
	case http.MethodPost:
		var op models.Operation
		if !DecodeJSON(w, r, &op) {
			return
		}

		index, err := s.app.Ledger.Append(r.Context(), op)
		if err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				WriteErrorWithCode(w, http.StatusBadRequest, verr.Error(), "validation")
				return
			}
			s.logger.Error().Err(err).Msg("Failed to record operation")
			WriteError(w, http.StatusInternalServerError, "Failed to record operation")
			return
		}

		WriteJSON(w, http.StatusCreated, map[string]interface{}{
			"index":     index,
			"operation": op,
		})
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleOperationDelete handles DELETE /api/operations/{index}.
func (s *Server) handleOperationDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	raw := PathParam(r, "/api/operations/", "")
	index, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid operation index: "+raw)
		return
	}

	if err := s.app.Ledger.Delete(r.Context(), index); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			WriteErrorWithCode(w, http.StatusNotFound, verr.Error(), "not_found")
			return
		}
		s.logger.Error().Err(err).Int("index", index).Msg("Failed to delete operation")
		WriteError(w, http.StatusInternalServerError, "Failed to delete operation")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": index,
	})
}

// handlePrices handles GET /api/prices.
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	snap := s.app.PriceCache.Snapshot(r.Context(), s.app.PortfolioTickers())
	WriteJSON(w, http.StatusOK, snap)
}

// handlePricesRefresh handles POST /api/prices/refresh: the manual
// forced refresh. Concurrent refreshes share one in-flight fetch.
func (s *Server) handlePricesRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	snap := s.app.PriceCache.Refresh(r.Context(), s.app.PortfolioTickers())
	WriteJSON(w, http.StatusOK, snap)
}
