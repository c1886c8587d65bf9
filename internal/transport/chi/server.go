package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/sukhanhub/sukhan/internal/domain/verse"
	healthuc "github.com/sukhanhub/sukhan/internal/usecase/health"
	searchuc "github.com/sukhanhub/sukhan/internal/usecase/search"
	suggestuc "github.com/sukhanhub/sukhan/internal/usecase/suggest"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest    = "bad_request"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server exposes the suggestion and search services over HTTP.
type Server struct {
	suggest *suggestuc.Service
	search  *searchuc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	suggest *suggestuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		suggest: suggest,
		search:  search,
		health:  health,
		logger:  logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/suggestions", s.Suggestions)
	r.Get("/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type suggestionsResponse struct {
	Suggestions             []verse.Suggestion `json:"suggestions"`
	DetectedLanguage        string             `json:"detectedLanguage"`
	Query                   string             `json:"query"`
	SelectedFromSuggestions bool               `json:"selectedFromSuggestions"`
	Error                   string             `json:"error,omitempty"`
}

type commonTermsResponse struct {
	CommonTerms []string `json:"commonTerms"`
}

// Suggestions handles GET /suggestions. The suggestion path never fails
// hard: internal errors degrade to an empty list so the dropdown simply
// shows nothing.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if parseBool(q.Get("common")) {
		result := s.suggest.Suggest(r.Context(), "", suggestuc.ModeCommonTerms)
		writeJSON(w, http.StatusOK, commonTermsResponse{
			CommonTerms: result.CommonTerms,
		})
		return
	}

	query := q.Get("q")
	selected := parseBool(q.Get("selected"))

	mode := suggestuc.ModeNormal
	if selected {
		mode = suggestuc.ModePostSelection
	}

	result := s.suggest.Suggest(r.Context(), query, mode)

	resp := suggestionsResponse{
		Suggestions:             result.Suggestions,
		DetectedLanguage:        string(result.Detected),
		Query:                   query,
		SelectedFromSuggestions: selected,
	}
	if result.Degraded {
		resp.Error = "retrieval failed"
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /search. Unlike suggestions this path has no
// fallback tier, so backend failures surface as 500.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := searchuc.Params{
		Query:    q.Get("query"),
		Kind:     contentKind(q.Get("contentType")),
		ParentID: q.Get("bookId"),
		Page:     parseInt(q.Get("page")),
		Limit:    parseInt(q.Get("limit")),
	}

	resp, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "search backend unavailable")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health. A missing text-search module degrades
// the report but does not fail it: suggestions keep working through the
// scan fallback, so only a dead database makes the service unavailable.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Checks["database"] == healthuc.CheckError {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseBool treats anything but an explicit true value as false.
func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// parseInt returns 0 for anything unparseable; the services clamp from
// there (malformed paging is validation, not an error).
func parseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func contentKind(v string) verse.Kind {
	switch v {
	case "stanza", "content":
		return verse.KindContent
	default:
		return verse.KindPoem
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
