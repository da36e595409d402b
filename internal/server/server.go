// Package server exposes the surplus aggregates over a JSON HTTP API
// plus CSV download endpoints. The handler holds one immutable dataset
// snapshot; every request derives fresh views from it.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/civicpulse/tif-surplus/internal/aggregate"
	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/internal/export"
	"github.com/civicpulse/tif-surplus/pkg/apportion"
	"github.com/civicpulse/tif-surplus/pkg/constants"
	"github.com/civicpulse/tif-surplus/pkg/format"
	"github.com/civicpulse/tif-surplus/pkg/mathutil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options tune the handler's defaults.
type Options struct {
	TopN          int
	RankingMethod dataset.Method
	Version       string
}

type handler struct {
	logger     *zap.Logger
	snapshot   *dataset.Snapshot
	topN       int
	rankMethod dataset.Method
	version    string
}

// NewHandler constructs the HTTP handler that serves the surplus API.
func NewHandler(logger *zap.Logger, snapshot *dataset.Snapshot, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TopN <= 0 {
		opts.TopN = constants.DefaultTopN
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:     logger,
		snapshot:   snapshot,
		topN:       opts.TopN,
		rankMethod: opts.RankingMethod,
		version:    version,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/version", h.handleVersion)
	r.Get("/api/summary", h.handleSummary)
	r.Get("/api/districts", h.handleDistrictList)
	r.Get("/api/district", h.handleDistrict)
	r.Get("/api/top", h.handleTop)
	r.Get("/api/wards", h.handleWardList)
	r.Get("/api/ward", h.handleWard)
	r.Get("/api/export/districts.csv", h.handleDistrictExport)
	r.Get("/api/export/wards.csv", h.handleWardExport)

	return r
}

type methodBreakdown struct {
	Method      string  `json:"method"`
	Label       string  `json:"label"`
	Amount      float64 `json:"amount"`
	CPSRevenue  float64 `json:"cpsRevenue"`
	CityRevenue float64 `json:"cityRevenue"`
	Display     string  `json:"display"`
	CPSDisplay  string  `json:"cpsDisplay"`
	CityDisplay string  `json:"cityDisplay"`
}

type rangeBounds struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	MinDisplay string  `json:"minDisplay"`
	MaxDisplay string  `json:"maxDisplay"`
}

type summaryResponse struct {
	Districts int               `json:"districts"`
	Methods   []methodBreakdown `json:"methods"`
	Range     rangeBounds       `json:"range"`
}

type districtResponse struct {
	Name            string            `json:"name"`
	Number          string            `json:"number"`
	DesignationDate string            `json:"designationDate"`
	ExpirationDate  string            `json:"expirationDate"`
	Methods         []methodBreakdown `json:"methods"`
	Range           rangeBounds       `json:"range"`
}

type topResponse struct {
	Method    string             `json:"method"`
	N         int                `json:"n"`
	Districts []districtResponse `json:"districts"`
	Range     rangeBounds        `json:"range"`
}

type wardOverlapView struct {
	Number          string  `json:"number"`
	Name            string  `json:"name"`
	Coverage        float64 `json:"coverage"`
	CoverageDisplay string  `json:"coverageDisplay"`
}

type wardResponse struct {
	WardID    int               `json:"wardId"`
	Methods   []methodBreakdown `json:"methods"`
	Districts []wardOverlapView `json:"districts"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	totals := aggregate.CitywideTotals(h.snapshot.Districts)
	min, max := aggregate.SubsetRange(h.snapshot.Districts)

	h.writeJSON(w, http.StatusOK, summaryResponse{
		Districts: len(h.snapshot.Districts),
		Methods:   buildBreakdowns(totals),
		Range:     buildRange(min, max),
	})
}

func (h *handler) handleDistrictList(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.snapshot.Districts))
	for _, d := range h.snapshot.Districts {
		names = append(names, d.Name)
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"districts": names})
}

func (h *handler) handleDistrict(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "missing required query parameter: name", "server.handleDistrict")
		return
	}

	district, ok := aggregate.FindDistrict(h.snapshot.Districts, name)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown district %q", name), "server.handleDistrict")
		return
	}

	h.writeJSON(w, http.StatusOK, buildDistrict(district))
}

func (h *handler) handleTop(w http.ResponseWriter, r *http.Request) {
	n := h.topN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid n %q", raw), "server.handleTop")
			return
		}
		n = parsed
	}

	method := h.rankMethod
	if raw := r.URL.Query().Get("method"); raw != "" {
		parsed, err := dataset.ParseMethod(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleTop")
			return
		}
		method = parsed
	}

	top := aggregate.TopN(h.snapshot.Districts, n, method)
	min, max := aggregate.SubsetRange(top)

	districts := make([]districtResponse, 0, len(top))
	for _, d := range top {
		districts = append(districts, buildDistrict(d))
	}

	h.writeJSON(w, http.StatusOK, topResponse{
		Method:    method.String(),
		N:         n,
		Districts: districts,
		Range:     buildRange(min, max),
	})
}

func (h *handler) handleWardList(w http.ResponseWriter, r *http.Request) {
	totals := aggregate.ByWard(h.snapshot)
	ids := make([]int, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.WardID)
	}
	h.writeJSON(w, http.StatusOK, map[string][]int{"wards": ids})
}

func (h *handler) handleWard(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		h.respondError(w, http.StatusBadRequest, "missing required query parameter: id", "server.handleWard")
		return
	}
	wardID, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid ward id %q", raw), "server.handleWard")
		return
	}

	totals := aggregate.ByWard(h.snapshot)
	ward, ok := aggregate.FindWard(totals, wardID)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown ward %d", wardID), "server.handleWard")
		return
	}

	overlaps := make([]wardOverlapView, 0, len(ward.Districts))
	for _, d := range ward.Districts {
		overlaps = append(overlaps, wardOverlapView{
			Number:          d.Number,
			Name:            d.Name,
			Coverage:        d.Coverage,
			CoverageDisplay: format.Percent(d.Coverage),
		})
	}

	h.writeJSON(w, http.StatusOK, wardResponse{
		WardID:    ward.WardID,
		Methods:   buildBreakdowns(ward.Raw),
		Districts: overlaps,
	})
}

func (h *handler) handleDistrictExport(w http.ResponseWriter, r *http.Request) {
	csvData, err := export.DistrictCSV(h.snapshot.Districts)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to assemble export: %v", err), "server.handleDistrictExport")
		return
	}
	h.writeCSV(w, "tif_surplus_districts.csv", csvData)
}

func (h *handler) handleWardExport(w http.ResponseWriter, r *http.Request) {
	csvData, err := export.WardCSV(aggregate.ByWard(h.snapshot))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to assemble export: %v", err), "server.handleWardExport")
		return
	}
	h.writeCSV(w, "tif_surplus_wards.csv", csvData)
}

func buildBreakdowns(totals dataset.MethodAmounts) []methodBreakdown {
	breakdowns := make([]methodBreakdown, 0, len(dataset.Methods()))
	for _, m := range dataset.Methods() {
		b := apportion.Split(totals.Get(m))
		// Serialized amounts are rounded to cents; apportioned values
		// otherwise carry long float tails into the JSON.
		amount := mathutil.Round(b.Amount)
		cps := mathutil.Round(b.CPS)
		city := mathutil.Round(b.City)
		breakdowns = append(breakdowns, methodBreakdown{
			Method:      m.String(),
			Label:       m.Label(),
			Amount:      amount,
			CPSRevenue:  cps,
			CityRevenue: city,
			Display:     format.Currency(amount),
			CPSDisplay:  format.Currency(cps),
			CityDisplay: format.Currency(city),
		})
	}
	return breakdowns
}

func buildDistrict(d dataset.DistrictRecord) districtResponse {
	min, max := d.Amounts.Range()
	return districtResponse{
		Name:            d.Name,
		Number:          d.Number,
		DesignationDate: d.DesignationDate,
		ExpirationDate:  d.ExpirationDate,
		Methods:         buildBreakdowns(d.Amounts),
		Range:           buildRange(min, max),
	}
}

func buildRange(min, max float64) rangeBounds {
	min = mathutil.Round(min)
	max = mathutil.Round(max)
	return rangeBounds{
		Min:        min,
		Max:        max,
		MinDisplay: format.Currency(min),
		MaxDisplay: format.Currency(max),
	}
}

func (h *handler) writeCSV(w http.ResponseWriter, filename, data string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(data)); err != nil && h.logger != nil {
		h.logger.Error("failed to write CSV response", zap.Error(err))
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
