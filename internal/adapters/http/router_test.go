package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/Live/internal/adapters/rtc"
	"github.com/dkeye/Live/internal/app/chat"
	"github.com/dkeye/Live/internal/app/orch"
	"github.com/dkeye/Live/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type cannedAssistant struct{ answer string }

func (a cannedAssistant) Answer(context.Context, chat.Prompt) (string, error) {
	return a.answer, nil
}

type server struct {
	*httptest.Server
	orch *orch.Orchestrator
}

func newServer(t *testing.T) *server {
	t.Helper()
	return newServerWithPacer(t, chat.NoDelay{})
}

func newServerWithPacer(t *testing.T, pacer chat.Pacer) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Mode = "test"
	cfg.StaticPath = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	o := orch.New(orch.Options{Authorize: true, Classify: rtc.Describe})
	turn := chat.NewTurn(cannedAssistant{answer: "abc"}, chat.NewForwarder(o.Notifier, pacer))
	srv := httptest.NewServer(SetupRouter(ctx, cfg, o, turn))
	t.Cleanup(srv.Close)
	return &server{Server: srv, orch: o}
}

func (s *server) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	// Wait until the server side is bound so broadcasts reach it.
	send(t, ws, map[string]any{"type": "ping"})
	expect(t, ws, "pong")
	return ws
}

type event map[string]any

func send(t *testing.T, ws *websocket.Conn, v any) {
	t.Helper()
	if err := ws.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func read(t *testing.T, ws *websocket.Conn) event {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev event
	if err := ws.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	return ev
}

// expect reads until an event of type typ arrives.
func expect(t *testing.T, ws *websocket.Conn, typ string) event {
	t.Helper()
	for {
		if ev := read(t, ws); ev["type"] == typ {
			return ev
		}
	}
}

// expectBefore fails if banned arrives before typ.
func expectBefore(t *testing.T, ws *websocket.Conn, typ, banned string) {
	t.Helper()
	for {
		ev := read(t, ws)
		switch ev["type"] {
		case banned:
			t.Fatalf("unexpected %s event: %v", banned, ev)
		case typ:
			return
		}
	}
}

func TestRelayScenario(t *testing.T) {
	s := newServer(t)
	owner, v1, v2 := s.dial(t), s.dial(t), s.dial(t)

	send(t, owner, map[string]any{"type": "start-session", "ownerId": "u1", "label": "Algebra", "sessionId": "S1"})
	created := expect(t, owner, "session-created")
	if created["sessionId"] != "S1" {
		t.Fatalf("ack = %v", created)
	}
	started := expect(t, v1, "session-started")
	if sess := started["session"].(map[string]any); sess["label"] != "Algebra" {
		t.Fatalf("session-started = %v", started)
	}

	send(t, v1, map[string]any{"type": "join-session", "sessionId": "S1", "viewerId": "v1"})
	joined := expect(t, owner, "viewer-joined")
	if joined["userId"] != "v1" || joined["viewerCount"] != float64(1) {
		t.Fatalf("viewer-joined = %v", joined)
	}
	send(t, v2, map[string]any{"type": "join-session", "sessionId": "S1", "viewerId": "v2"})
	if ev := expect(t, owner, "viewer-joined"); ev["viewerCount"] != float64(2) {
		t.Fatalf("viewer-joined = %v", ev)
	}
	expect(t, v1, "viewer-joined")

	payload := map[string]any{"type": "offer", "sdp": "v=0"}
	send(t, v1, map[string]any{"type": "signal", "sessionId": "S1", "from": "v1", "initiator": true, "signal": payload})

	for _, ws := range []*websocket.Conn{owner, v2} {
		ev := expect(t, ws, "signal")
		if ev["from"] != "v1" || ev["initiator"] != true {
			t.Fatalf("signal = %v", ev)
		}
		if sig := ev["signal"].(map[string]any); sig["sdp"] != "v=0" {
			t.Fatalf("payload altered: %v", sig)
		}
	}

	send(t, v1, map[string]any{"type": "ping"})
	expectBefore(t, v1, "pong", "signal")
}

func TestJoinUnknownSession(t *testing.T) {
	s := newServer(t)
	ws := s.dial(t)
	send(t, ws, map[string]any{"type": "join-session", "sessionId": "nope", "viewerId": "v1"})
	ev := expect(t, ws, "error")
	if ev["code"] != "session_not_found" || ev["error"] != "Session not found or has ended" {
		t.Fatalf("error = %v", ev)
	}
	// Connection stays usable.
	send(t, ws, map[string]any{"type": "ping"})
	expect(t, ws, "pong")
}

func TestStartWithoutOwner(t *testing.T) {
	s := newServer(t)
	ws := s.dial(t)
	send(t, ws, map[string]any{"type": "start-session", "label": "x"})
	if ev := expect(t, ws, "error"); ev["code"] != "invalid_request" {
		t.Fatalf("error = %v", ev)
	}
}

func TestEndNotifiesRoomAndRejectsStrangers(t *testing.T) {
	s := newServer(t)
	owner, viewer, stranger := s.dial(t), s.dial(t), s.dial(t)

	send(t, owner, map[string]any{"type": "start-session", "ownerId": "u1", "sessionId": "S1"})
	expect(t, owner, "session-created")
	send(t, viewer, map[string]any{"type": "join-session", "sessionId": "S1", "viewerId": "v1"})
	expect(t, viewer, "viewer-joined")

	send(t, stranger, map[string]any{"type": "end-session", "sessionId": "S1"})
	if ev := expect(t, stranger, "error"); ev["code"] != "forbidden" {
		t.Fatalf("error = %v", ev)
	}

	send(t, owner, map[string]any{"type": "end-session", "sessionId": "S1"})
	if ev := expect(t, viewer, "session-ended"); ev["sessionId"] != "S1" {
		t.Fatalf("session-ended = %v", ev)
	}

	send(t, viewer, map[string]any{"type": "get-active-sessions"})
	ev := expect(t, viewer, "active-sessions")
	if list := ev["sessions"].([]any); len(list) != 0 {
		t.Fatalf("sessions = %v", list)
	}
}

func TestChatStreamsPerCharacter(t *testing.T) {
	s := newServer(t)
	ws := s.dial(t)
	send(t, ws, map[string]any{"type": "chat-message", "text": "hello"})

	var got strings.Builder
	chunks := 0
	for {
		ev := read(t, ws)
		if ev["type"] == "chat-stream-end" {
			break
		}
		if ev["type"] != "chat-chunk" {
			t.Fatalf("unexpected %v", ev)
		}
		chunks++
		got.WriteString(ev["text"].(string))
	}
	if chunks != 3 || got.String() != "abc" {
		t.Fatalf("chunks=%d text=%q", chunks, got.String())
	}
}

func TestRESTSurface(t *testing.T) {
	s := newServer(t)
	ws := s.dial(t)
	send(t, ws, map[string]any{"type": "start-session", "ownerId": "u1", "sessionId": "S1"})
	expect(t, ws, "session-created")

	get := func(path string) (int, map[string]any) {
		resp, err := http.Get(s.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		defer resp.Body.Close()
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return resp.StatusCode, body
	}

	if code, body := get("/healthz"); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz = %d %v", code, body)
	}
	if code, body := get("/api/sessions"); code != http.StatusOK || len(body["sessions"].([]any)) != 1 {
		t.Fatalf("sessions = %d %v", code, body)
	}
	if code, body := get("/api/sessions/S1"); code != http.StatusOK || body["ownerId"] != "u1" {
		t.Fatalf("session = %d %v", code, body)
	}
	if code, _ := get("/api/sessions/missing"); code != http.StatusNotFound {
		t.Fatalf("missing session = %d", code)
	}
	code, body := get("/api/rtc/config")
	if code != http.StatusOK || len(body["iceServers"].([]any)) != 1 {
		t.Fatalf("rtc config = %d %v", code, body)
	}
}

func TestChatTurnsDoNotInterleave(t *testing.T) {
	s := newServerWithPacer(t, chat.FixedDelay(2*time.Millisecond))
	ws := s.dial(t)
	send(t, ws, map[string]any{"type": "chat-message", "text": "one"})
	send(t, ws, map[string]any{"type": "chat-message", "text": "two"})

	var order []string
	var text strings.Builder
	for ends := 0; ends < 2; {
		ev := read(t, ws)
		switch ev["type"] {
		case "chat-chunk":
			order = append(order, "chunk")
			text.WriteString(ev["text"].(string))
		case "chat-stream-end":
			order = append(order, "end")
			ends++
		default:
			t.Fatalf("unexpected %v", ev)
		}
	}
	want := []string{"chunk", "chunk", "chunk", "end", "chunk", "chunk", "chunk", "end"}
	if strings.Join(order, ",") != strings.Join(want, ",") || text.String() != "abcabc" {
		t.Fatalf("order = %v text = %q", order, text.String())
	}
}
