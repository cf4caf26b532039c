package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TileBoard/internal/state"
)

// BoardPath is the websocket endpoint served by a host.
const BoardPath = "/board"

var upgrader = websocket.Upgrader{
	// Boards are shared on the local network with whoever has the link.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Peer is one end of a board connection. Sends are safe from any goroutine.
type Peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{conn: conn}
}

// Send writes one op to the other end.
func (p *Peer) Send(op state.Op) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.WriteJSON(op); err != nil {
		return fmt.Errorf("send to %s: %w", p.RemoteAddr(), err)
	}
	return nil
}

// Listen reads ops until the connection fails or is closed, handing each
// one to onOp. It returns the error that ended the connection.
func (p *Peer) Listen(onOp func(state.Op)) error {
	for {
		var op state.Op
		if err := p.conn.ReadJSON(&op); err != nil {
			return err
		}
		onOp(op)
	}
}

func (p *Peer) LocalAddr() string  { return p.conn.LocalAddr().String() }
func (p *Peer) RemoteAddr() string { return p.conn.RemoteAddr().String() }
func (p *Peer) Close() error       { return p.conn.Close() }

// Dial connects a client to the host at addr (host:port).
func Dial(ctx context.Context, addr string) (*Peer, error) {
	url := "ws://" + addr + BoardPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.Printf("[NET] Connected to host %s as %s", addr, conn.LocalAddr())
	return newPeer(conn), nil
}

// Hub is run by the host. It accepts client connections, hands every op a
// client sends to OnOp and relays it to all other clients.
type Hub struct {
	peers map[*Peer]struct{}
	mu    sync.RWMutex

	// OnOp is called from connection goroutines.
	OnOp func(state.Op)
}

func NewHub(onOp func(state.Op)) *Hub {
	return &Hub{
		peers: make(map[*Peer]struct{}),
		OnOp:  onOp,
	}
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	log.Printf("[NET] Added connection: %s", p.RemoteAddr())
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, p)
	log.Printf("[NET] Removed connection: %s", p.RemoteAddr())
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast sends op to every client except exclude, which may be nil.
func (h *Hub) Broadcast(op state.Op, exclude *Peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == exclude {
			continue
		}
		if err := p.Send(op); err != nil {
			log.Printf("[NET] Error sending: %v", err)
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[NET] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	p := newPeer(conn)
	h.add(p)
	defer h.remove(p)
	defer p.Close()

	err = p.Listen(func(op state.Op) {
		log.Printf("[HOST] Received '%s' from %s", op.Type, p.RemoteAddr())
		if h.OnOp != nil {
			h.OnOp(op)
		}
		h.Broadcast(op, p)
	})
	log.Printf("[NET] Client %s disconnected: %v", p.RemoteAddr(), err)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		p.Close()
	}
}

// Serve runs the hub on addr until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("host server: %w", err)
	}
	return h.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. On cancellation the
// server stops accepting and every client connection is closed.
func (h *Hub) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(BoardPath, h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		h.Close()
	}()

	log.Printf("[NET] Host server listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("host server: %w", err)
	}
	return nil
}
