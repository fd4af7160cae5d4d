package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	svc  *application.WidgetService
	ping func(ctx context.Context) error
}

func NewServer(svc *application.WidgetService) *Server {
	return &Server{svc: svc, ping: svc.Ping}
}

// SetReadyCheck overrides the readiness probe.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type quoteResponse struct {
	Price24h       float64             `json:"price_24h"`
	Volume24h      float64             `json:"volume_24h"`
	LastTradePrice float64             `json:"last_trade_price"`
	Difference     float64             `json:"difference"`
	Direction      domain.Direction    `json:"direction"`
	Failed         bool                `json:"failed"`
	Display        application.Display `json:"display"`
	Date           time.Time           `json:"date"`
}

type timelineResponse struct {
	Entries      []quoteResponse `json:"entries"`
	RefreshAfter time.Time       `json:"refresh_after"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) entryResponse(e domain.Entry) quoteResponse {
	return quoteResponse{
		Price24h:       e.Quote.Price24h,
		Volume24h:      e.Quote.Volume24h,
		LastTradePrice: e.Quote.LastTradePrice,
		Difference:     e.Quote.Difference(),
		Direction:      application.Classify(e.Quote, e.Failed),
		Failed:         e.Failed,
		Display:        s.svc.Presenter().Format(e.Quote, e.Failed),
		Date:           e.Date,
	}
}

func (s *Server) timelineResponse(tl domain.Timeline) timelineResponse {
	out := timelineResponse{Entries: make([]quoteResponse, 0, len(tl.Entries)), RefreshAfter: tl.RefreshAfter}
	for _, e := range tl.Entries {
		out.Entries = append(out.Entries, s.entryResponse(e))
	}
	return out
}

func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.CurrentEntry(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, s.entryResponse(e))
}

func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	tl, err := s.svc.Current(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, s.timelineResponse(tl))
}

func (s *Server) GetPlaceholder(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.entryResponse(s.svc.Placeholder()))
}

func (s *Server) GetWidget(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.View(r.Context(), chi.URLParam(r, "family"), r.URL.Query().Get("scheme"))
	if err != nil {
		if errors.Is(err, application.ErrBadRequest) {
			badRequest(w, err.Error())
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
