package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/state"
)

func change(ids ...string) state.Change {
	strokes := make([]state.Stroke, 0, len(ids))
	for _, id := range ids {
		strokes = append(strokes, state.Stroke{ID: id, Points: []state.Point{{X: 1, Y: 2}}, Color: "#000000", Width: 3, Tool: state.ToolPen})
	}
	return state.Change{Document: state.Document{Version: state.DocumentVersion, Strokes: strokes}, CanUndo: len(ids) > 0}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m Message
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestFeedBroadcast(t *testing.T) {
	f := NewFeed()
	srv := httptest.NewServer(f)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	require.Eventually(t, func() bool { return f.Peers() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, f.Publish(change("s1", "s2")))
	for _, conn := range []*websocket.Conn{a, b} {
		m := read(t, conn)
		assert.Equal(t, MessageDocument, m.Type)
		assert.True(t, m.CanUndo)
		require.Len(t, m.Document.Strokes, 2)
		assert.Equal(t, "s2", m.Document.Strokes[1].ID)
	}
}

func TestFeedSendsLatestOnConnect(t *testing.T) {
	f := NewFeed()
	srv := httptest.NewServer(f)
	defer srv.Close()

	require.NoError(t, f.Publish(change("old")))
	require.NoError(t, f.Publish(change("new")))

	m := read(t, dial(t, srv))
	require.Len(t, m.Document.Strokes, 1)
	assert.Equal(t, "new", m.Document.Strokes[0].ID)
}

func TestFeedIgnoresInboundAndDropsClosedPeers(t *testing.T) {
	f := NewFeed()
	srv := httptest.NewServer(f)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return f.Peers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"clear"}`)))
	require.NoError(t, f.Publish(change()))
	m := read(t, conn)
	assert.Empty(t, m.Document.Strokes)

	conn.Close()
	assert.Eventually(t, func() bool { return f.Peers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatch(t *testing.T) {
	f := NewFeed()
	srv := httptest.NewServer(f)
	defer srv.Close()
	require.NoError(t, f.Publish(change("a")))

	ctx, cancel := context.WithCancel(t.Context())
	got := make(chan Message, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), func(m Message) {
			got <- m
			cancel()
		})
	}()

	select {
	case m := <-got:
		assert.Equal(t, "a", m.Document.Strokes[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message")
	}
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestFeedClose(t *testing.T) {
	f := NewFeed()
	srv := httptest.NewServer(f)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return f.Peers() == 1 }, time.Second, 10*time.Millisecond)
	f.Close()
	assert.Equal(t, 0, f.Peers())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestListenPortAndShareLink(t *testing.T) {
	port, err := ListenPort(":8888")
	require.NoError(t, err)
	assert.Equal(t, 8888, port)

	_, err = ListenPort("8888")
	assert.Error(t, err)
	_, err = ListenPort(":http")
	assert.Error(t, err)

	assert.Equal(t, "ws://192.168.1.4:8888/feed", ShareLink("192.168.1.4", 8888))
}
