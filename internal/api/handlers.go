package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ChartBalance/internal/calculator"
	"ChartBalance/internal/collector"
	"ChartBalance/internal/lexicon"
	"ChartBalance/internal/metrics"
	"ChartBalance/internal/model"
	"ChartBalance/internal/recorder"
)

const (
	defaultListLimit = 20
	// MaxBodyBytes caps a POSTed chart; extracted report pages are a few KB.
	MaxBodyBytes = 1 << 20
)

// Handler ties HTTP routes to the assessment pipeline.
type Handler struct {
	collector *collector.Collector
	recorder  recorder.Recorder
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewHandler creates a new Handler. m may be nil.
func NewHandler(col *collector.Collector, rec recorder.Recorder, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{collector: col, recorder: rec, metrics: m, logger: logger}
}

// Routes mounts the assessment endpoints on a fresh router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(h.metrics.Middleware)

	r.Get("/healthz", h.Health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	r.Route("/assessments", func(r chi.Router) {
		r.Post("/", h.CreateAssessment)
		r.Get("/", h.ListAssessments)
		r.Get("/{assessmentID}", h.GetAssessment)
	})
	return r
}

type createRequest struct {
	Text   json.RawMessage `json:"text"`
	Source string          `json:"source"`
}

// Display carries shares normalized to sum to exactly 100 for presentation.
// Qualities follow the planet count, as the dominant quality does.
type Display struct {
	Elements  map[model.Element]float64 `json:"elements"`
	Qualities map[model.Quality]float64 `json:"qualities"`
}

type assessmentResponse struct {
	*model.Assessment
	Display Display `json:"display"`
}

func newAssessmentResponse(a *model.Assessment) assessmentResponse {
	return assessmentResponse{
		Assessment: a,
		Display: Display{
			Elements:  calculator.IntShares(model.Elements, a.ElementScores),
			Qualities: calculator.IntShares(model.Qualities, a.QualityCounts),
		},
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateAssessment parses and scores the posted chart text and stores the result.
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	var raw any
	if len(req.Text) > 0 {
		_ = json.Unmarshal(req.Text, &raw)
	}
	text, ok := raw.(string)
	if !ok {
		h.respondError(w, http.StatusBadRequest, errors.New("text must be a JSON string"))
		return
	}

	a, err := h.collector.Collect(&collector.StaticSource{Label: req.Source, Text: text})
	if errors.Is(err, collector.ErrNoText) {
		h.metrics.ObserveAssessment("api", metrics.OutcomeNoText, 0)
		h.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		h.metrics.ObserveAssessment("api", metrics.OutcomeError, 0)
		h.respondError(w, http.StatusInternalServerError, err)
		return
	}
	h.metrics.ObserveAssessment("api", metrics.OutcomeOK, a.Positions.Resolved())

	if err := h.recorder.RecordAssessment(a); err != nil {
		h.logger.Error("record assessment", zap.String("id", a.ID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, errors.New("failed to store assessment"))
		return
	}
	h.respondJSON(w, http.StatusCreated, newAssessmentResponse(a))
}

// ListAssessments returns the most recent assessment summaries. With
// ?point=&sign= only charts placing that point in that sign are listed.
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := defaultListLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	var (
		list []model.AssessmentSummary
		err  error
	)
	pointArg, signArg := q.Get("point"), q.Get("sign")
	switch {
	case pointArg == "" && signArg == "":
		list, err = h.recorder.ListAssessments(limit)
	case pointArg == "" || signArg == "":
		h.respondError(w, http.StatusBadRequest, errors.New("point and sign must be given together"))
		return
	default:
		pt, ok := model.ParsePoint(pointArg)
		if !ok {
			h.respondError(w, http.StatusBadRequest, fmt.Errorf("unknown point %q", pointArg))
			return
		}
		sign, ok := lexicon.ParseSign(signArg)
		if !ok {
			h.respondError(w, http.StatusBadRequest, fmt.Errorf("unknown sign %q", signArg))
			return
		}
		list, err = h.recorder.FindByPosition(pt, sign, limit)
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err)
		return
	}
	if list == nil {
		list = []model.AssessmentSummary{}
	}
	h.respondJSON(w, http.StatusOK, list)
}

// GetAssessment fetches a stored assessment by ID.
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assessmentID")
	a, err := h.recorder.GetAssessment(id)
	if errors.Is(err, recorder.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, fmt.Errorf("assessment %s not found", id))
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newAssessmentResponse(a))
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, code int, err error) {
	h.respondJSON(w, code, map[string]string{"error": err.Error()})
}
