package handler

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/stocksim/internal/service"
)

// NewRouter creates a chi router with all routes registered, request logging,
// and Content-Type validation middleware.
func NewRouter(
	teamSvc *service.TeamService,
	orderSvc *service.OrderService,
	marketSvc *service.MarketService,
	newsSvc *service.NewsService,
	adminSvc *service.AdminService,
	webhookSvc *service.WebhookService,
	streamH *StreamHandler,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	teamH := NewTeamHandler(teamSvc)
	orderH := NewOrderHandler(orderSvc)
	marketH := NewMarketHandler(marketSvc)
	newsH := NewNewsHandler(newsSvc)
	adminH := NewAdminHandler(adminSvc, newsSvc)
	webhookH := NewWebhookHandler(webhookSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Team routes.
	r.Post("/teams", teamH.Register)
	r.Post("/teams/login", teamH.Login)
	r.Get("/teams/{team_id}/balance", teamH.GetBalance)

	// Order routes.
	r.Post("/orders", orderH.SubmitOrder)

	// Market data routes.
	r.Get("/market/prices", marketH.ListPrices)
	r.Get("/market/prices/{ticker}", marketH.GetPrice)
	r.Get("/leaderboard", marketH.Leaderboard)

	// News routes.
	r.Get("/news", newsH.Feed)
	r.Post("/news/publish/{scenario_id}", newsH.Publish)

	// Admin routes.
	r.Get("/admin/trades", adminH.Trades)
	r.Get("/admin/scenarios", adminH.Scenarios)
	r.Get("/admin/market/status", adminH.MarketStatus)
	r.Post("/admin/market/open", adminH.OpenMarket)
	r.Post("/admin/market/close", adminH.CloseMarket)
	r.Post("/admin/market/reset", adminH.ResetSession)

	// Webhook routes.
	r.Post("/webhooks", webhookH.Upsert)
	r.Get("/webhooks", webhookH.List)
	r.Delete("/webhooks/{webhook_id}", webhookH.Delete)

	// Live quote stream.
	r.Get("/stream/quotes", streamH.Quotes)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Hijack forwards to the wrapped writer. The websocket upgrade on the quote
// stream asserts http.Hijacker on the writer it is handed, and interface
// embedding does not surface the wrapped writer's method.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT,
// and PATCH requests carrying a body. If the Content-Type header doesn't
// start with "application/json", it returns 400 Bad Request before the
// handler runs. Body-less POSTs (the admin and publish controls) pass
// through.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasBody := r.ContentLength != 0
		if hasBody && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
