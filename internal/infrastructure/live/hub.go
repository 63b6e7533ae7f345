package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 16
)

// BidEvent is pushed to every viewer of an auction when a bid commits.
type BidEvent struct {
	Type       string    `json:"type"`
	AuctionID  string    `json:"auction_id"`
	BidID      string    `json:"bid_id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

type subscriber struct {
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() { s.once.Do(func() { close(s.send) }) }

// Hub fans committed bids out to websocket viewers, grouped by auction.
// A viewer whose buffer is full is disconnected rather than slowing bidders.
type Hub struct {
	Logger   *logrus.Logger
	Upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub(logger *logrus.Logger, allowedOrigins []string) *Hub {
	h := &Hub{Logger: logger, subs: make(map[string]map[*subscriber]struct{})}
	h.Upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

func (h *Hub) subscribe(auctionID string) *subscriber {
	s := &subscriber{send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[auctionID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[auctionID] = set
	}
	set[s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(auctionID string, s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[auctionID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, auctionID)
		}
	}
	s.close()
}

// Subscribers returns how many viewers are watching auctionID.
func (h *Hub) Subscribers(auctionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[auctionID])
}

// BidPlaced never blocks.
func (h *Hub) BidPlaced(b *entity.Bid) {
	msg, err := json.Marshal(BidEvent{
		Type:       "bid_placed",
		AuctionID:  b.AuctionID,
		BidID:      b.ID,
		BidderID:   b.BidderID,
		BidderName: b.BidderName,
		Amount:     b.Amount,
		CreatedAt:  b.CreatedAt,
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[b.AuctionID] {
		select {
		case s.send <- msg:
		default:
			delete(h.subs[b.AuctionID], s)
			s.close()
			if h.Logger != nil {
				h.Logger.WithField("auction_id", b.AuctionID).Warn("dropping slow live subscriber")
			}
		}
	}
	if len(h.subs[b.AuctionID]) == 0 {
		delete(h.subs, b.AuctionID)
	}
}

// Serve upgrades the request and streams bid events for auctionID until the
// client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, auctionID string) error {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	s := h.subscribe(auctionID)
	if h.Logger != nil {
		h.Logger.WithField("auction_id", auctionID).Debug("live subscriber connected")
	}

	go h.readLoop(conn, auctionID, s)
	h.writeLoop(conn, s)
	return nil
}

// readLoop only handles control frames; it unsubscribes once the peer closes.
func (h *Hub) readLoop(conn *websocket.Conn, auctionID string, s *subscriber) {
	defer h.unsubscribe(auctionID, s)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, s *subscriber) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
