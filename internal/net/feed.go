// Package net publishes document changes to other machines on the local
// network: a read-only websocket feed, announced over mDNS.
package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// MessageDocument is the type of every message the feed sends.
const MessageDocument = "document"

// Message is the wire form of a state.Change.
type Message struct {
	Type string `json:"type"`
	state.Change
}

// Feed fans Changes out to websocket subscribers. A new subscriber first
// receives the most recent Change. Anything a subscriber sends is ignored.
type Feed struct {
	upgrader websocket.Upgrader
	peers    *PeerManager

	mu     sync.Mutex
	latest []byte
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		peers: NewPeerManager(),
	}
}

// Publish sends c to every subscriber and keeps it for late joiners.
func (f *Feed) Publish(c state.Change) error {
	data, err := json.Marshal(Message{Type: MessageDocument, Change: c})
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = data
	f.peers.Broadcast(data)
	logx.Logger().Debug("[FEED] published", "strokes", len(c.Document.Strokes), "peers", f.peers.Len())
	return nil
}

// Peers returns the number of connected subscribers.
func (f *Feed) Peers() int { return f.peers.Len() }

// Close disconnects all subscribers.
func (f *Feed) Close() { f.peers.CloseAll() }

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Logger().Warn("[FEED] upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := newPeer(conn)

	f.mu.Lock()
	f.peers.Add(p)
	if f.latest != nil {
		f.peers.sendTo(p, f.latest)
	}
	f.mu.Unlock()

	defer f.peers.Remove(p)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		logx.Logger().Debug("[FEED] ignoring inbound message", "peer", p.Addr())
	}
}

// Serve runs an HTTP server for f on addr, with the feed at /feed, until
// ctx is cancelled.
func Serve(ctx context.Context, addr string, f *Feed) error {
	mux := http.NewServeMux()
	mux.Handle("/feed", f)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logx.Logger().Info("[FEED] listening", "addr", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("feed server: %w", err)
	case <-ctx.Done():
	}
	f.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("feed shutdown: %w", err)
	}
	return nil
}

// Watch connects to a feed at url and calls fn for every message until
// ctx is cancelled or the connection drops.
func Watch(ctx context.Context, url string, fn func(Message)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial feed %s: %w", url, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read feed: %w", err)
		}
		fn(m)
	}
}
