package spectate

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
	"github.com/vovakirdan/brickbreaker/internal/registry"
)

type testView struct {
	Score int    `msgpack:"score"`
	Name  string `msgpack:"name"`
}

type testFrame struct {
	Seq  uint64   `msgpack:"seq"`
	View testView `msgpack:"view"`
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) testFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Fatalf("message type %d, want binary", msgType)
	}
	var f testFrame
	if err := msgpack.Unmarshal(raw, &f); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	return f
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("spectators = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsToEverySpectator(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)
	waitForClients(t, hub, 2)

	hub.Publish(testView{Score: 120, Name: "ann"})

	for _, conn := range []*websocket.Conn{a, b} {
		f := readFrame(t, conn)
		if f.Seq != 1 || f.View.Score != 120 || f.View.Name != "ann" {
			t.Errorf("unexpected frame %+v", f)
		}
	}
}

func TestHubSendsLatestFrameToNewcomers(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	waitForClients(t, hub, 1)

	hub.Publish(testView{Score: 1})
	hub.Publish(testView{Score: 2})
	readFrame(t, first)
	if f := readFrame(t, first); f.View.Score != 2 {
		t.Fatalf("second frame score = %d", f.View.Score)
	}

	late := dial(t, url)
	f := readFrame(t, late)
	if f.Seq != 2 || f.View.Score != 2 {
		t.Errorf("newcomer got %+v, want the latest frame", f)
	}
}

func TestHubForgetsDisconnectedSpectators(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitForClients(t, hub, 0)
}

func TestBreakoutSnapshotSurvivesTheWire(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	g := breakout.New(registry.Env{})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	in := core.NewInputFrame()
	in.Set(core.ActionLaunch)
	g.Step(in)
	want := g.SpectatorView().(breakout.Snapshot)
	hub.Publish(want)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got struct {
		Seq  uint64            `msgpack:"seq"`
		View breakout.Snapshot `msgpack:"view"`
	}
	if err := msgpack.Unmarshal(raw, &got); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	if got.View.Hash() != want.Hash() {
		t.Errorf("snapshot changed on the wire: score %d/%d, balls %d/%d",
			got.View.Score, want.Score, len(got.View.Balls), len(want.Balls))
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil) // not running: nothing drains the queue
	done := make(chan struct{})
	go func() {
		for range broadcastSize + 5 {
			hub.Publish(testView{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}
	if hub.Dropped() != 5 {
		t.Errorf("dropped = %d, want 5", hub.Dropped())
	}
}

func TestHealthz(t *testing.T) {
	hub, _ := startHub(t)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "spectators=0") {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestListenAndShutdown(t *testing.T) {
	srv, err := Listen(context.Background(), "127.0.0.1:0", NewHub(nil))
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	if !strings.HasPrefix(srv.URL(), "ws://127.0.0.1:") {
		t.Errorf("URL = %q", srv.URL())
	}

	conn, _, err := websocket.DefaultDialer.Dial(srv.URL(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
