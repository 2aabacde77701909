package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/efreitasn/stocksim/internal/service"
)

// StreamHandler pushes quote snapshots to websocket clients at a fixed
// interval.
type StreamHandler struct {
	marketSvc *service.MarketService
	interval  time.Duration
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewStreamHandler creates a new StreamHandler. interval is the time between
// pushed snapshots.
func NewStreamHandler(marketSvc *service.MarketService, interval time.Duration, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		marketSvc: marketSvc,
		interval:  interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The stream is public read-only market data.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// quoteSnapshot is one websocket frame: the full quote list at an instant.
type quoteSnapshot struct {
	Type   string          `json:"type"`
	At     string          `json:"at"`
	Prices []quoteResponse `json:"prices"`
}

// Quotes handles GET /stream/quotes. Each connection gets the current
// snapshot immediately, then a fresh one every interval until the client
// disconnects.
func (h *StreamHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	defer conn.Close()

	// Read pump: the client never sends data frames, but reading is the
	// only way to observe a close frame.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeSnapshot(conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := h.writeSnapshot(conn); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) writeSnapshot(conn *websocket.Conn) error {
	quotes := h.marketSvc.Quotes()
	prices := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		prices[i] = buildQuoteResponse(q)
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(quoteSnapshot{
		Type:   "quotes",
		At:     time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		Prices: prices,
	})
}
