package net

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"InkBoard/internal/logx"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// Peer is one websocket subscriber. Writes go through send so that only
// the peer's own goroutine touches the connection.
type Peer struct {
	conn *websocket.Conn
	send chan []byte
	addr string
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{conn: conn, send: make(chan []byte, sendBuffer), addr: conn.RemoteAddr().String()}
}

// Addr is the remote address of the peer.
func (p *Peer) Addr() string { return p.addr }

func (p *Peer) writeLoop() {
	defer p.conn.Close()
	for msg := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logx.Logger().Debug("[FEED] write failed", "peer", p.addr, "err", err)
			return
		}
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// PeerManager tracks the connected subscribers of a Feed.
type PeerManager struct {
	peers map[*Peer]struct{}
	mu    sync.RWMutex
}

func NewPeerManager() *PeerManager {
	return &PeerManager{peers: make(map[*Peer]struct{})}
}

// Add registers p and starts its writer.
func (pm *PeerManager) Add(p *Peer) {
	pm.mu.Lock()
	pm.peers[p] = struct{}{}
	n := len(pm.peers)
	pm.mu.Unlock()
	go p.writeLoop()
	logx.Logger().Info("[FEED] peer connected", "peer", p.addr, "peers", n)
}

// Remove unregisters p and closes its connection once pending writes are
// flushed. Removing an unknown peer does nothing.
func (pm *PeerManager) Remove(p *Peer) {
	pm.mu.Lock()
	_, ok := pm.peers[p]
	if ok {
		delete(pm.peers, p)
		close(p.send)
	}
	n := len(pm.peers)
	pm.mu.Unlock()
	if ok {
		logx.Logger().Info("[FEED] peer disconnected", "peer", p.addr, "peers", n)
	}
}

// Broadcast queues data for every peer. Peers whose queue is full are
// dropped rather than stalling the caller.
func (pm *PeerManager) Broadcast(data []byte) {
	var slow []*Peer
	pm.mu.RLock()
	for p := range pm.peers {
		select {
		case p.send <- data:
		default:
			slow = append(slow, p)
		}
	}
	pm.mu.RUnlock()
	for _, p := range slow {
		logx.Logger().Warn("[FEED] dropping slow peer", "peer", p.addr)
		pm.Remove(p)
	}
}

// sendTo queues data for one peer if it is still registered.
func (pm *PeerManager) sendTo(p *Peer, data []byte) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	if _, ok := pm.peers[p]; !ok {
		return
	}
	select {
	case p.send <- data:
	default:
	}
}

func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll disconnects every peer.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	all := make([]*Peer, 0, len(pm.peers))
	for p := range pm.peers {
		all = append(all, p)
	}
	pm.mu.RUnlock()
	for _, p := range all {
		pm.Remove(p)
	}
}
