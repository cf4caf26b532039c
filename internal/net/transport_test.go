package net

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TileBoard/internal/state"
)

type opLog struct {
	mu  sync.Mutex
	ops []state.Op
}

func (l *opLog) add(op state.Op) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) snapshot() []state.Op {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]state.Op(nil), l.ops...)
}

func startHub(t *testing.T) (*Hub, *opLog, string) {
	t.Helper()
	hostOps := &opLog{}
	hub := NewHub(hostOps.add)
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	return hub, hostOps, strings.TrimPrefix(srv.URL, "http://")
}

func dialListening(t *testing.T, addr string) (*Peer, *opLog) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	p, err := Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	got := &opLog{}
	go p.Listen(got.add)
	return p, got
}

func TestHubRelaysToOtherClients(t *testing.T) {
	hub, hostOps, addr := startHub(t)
	a, aOps := dialListening(t, addr)
	_, bOps := dialListening(t, addr)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	op := state.Op{
		Type:    state.OpInsertStroke,
		Site:    "site-a",
		Lamport: 1,
		Stroke:  1,
		Points:  []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}
	require.NoError(t, a.Send(op))

	require.Eventually(t, func() bool { return len(bOps.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, op, bOps.snapshot()[0])
	require.Eventually(t, func() bool { return len(hostOps.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, op, hostOps.snapshot()[0])
	assert.Empty(t, aOps.snapshot(), "sender must not get its own op back")
}

func TestHubBroadcastFromHost(t *testing.T) {
	hub, _, addr := startHub(t)
	_, aOps := dialListening(t, addr)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(state.Op{Type: state.OpClear, Site: "host", Lamport: 3}, nil)
	require.Eventually(t, func() bool { return len(aOps.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, state.OpClear, aOps.snapshot()[0].Type)
}

func TestHubDropsClosedClients(t *testing.T) {
	hub, _, addr := startHub(t)
	a, _ := dialListening(t, addr)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, a.Close())
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSessionsSyncThroughHub(t *testing.T) {
	hub, _, addr := startHub(t)
	host := state.NewSession(state.DefaultParams())

	var mu sync.Mutex
	hub.OnOp = func(op state.Op) {
		mu.Lock()
		defer mu.Unlock()
		host.Apply(op)
	}

	client := state.NewSession(state.DefaultParams())
	p, _ := dialListening(t, addr)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
	client.OnLocalOp = func(op state.Op) { require.NoError(t, p.Send(op)) }

	st := client.BeginStroke(10, 10)
	client.ExtendStroke(st, 20, 20)
	client.FinalizeStroke(st)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return host.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDialFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Dial(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}

func TestServeClosesClientsOnShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- hub.ServeListener(ctx, ln) }()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer dialCancel()
	p, err := Dial(dialCtx, ln.Addr().String())
	require.NoError(t, err)
	defer p.Close()
	listened := make(chan error, 1)
	go func() { listened <- p.Listen(func(state.Op) {}) }()
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-listened:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("client still connected after host shutdown")
	}
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NoError(t, <-served)
}
