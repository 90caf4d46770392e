package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Live/internal/core"
	"github.com/dkeye/Live/internal/core/mock_core"
	"go.uber.org/mock/gomock"
)

// capture records frames emitted to one connection through a mock notifier.
type capture struct {
	mu     sync.Mutex
	chunks []string
	ends   int
	order  []core.EventType
}

func (c *capture) record(t *testing.T) func(core.ConnID, core.Frame) error {
	return func(_ core.ConnID, f core.Frame) error {
		var ev struct {
			Type core.EventType `json:"type"`
			Text string         `json:"text"`
		}
		if err := json.Unmarshal(f, &ev); err != nil {
			t.Errorf("bad frame %s: %v", f, err)
			return nil
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.order = append(c.order, ev.Type)
		switch ev.Type {
		case core.EvChatChunk:
			c.chunks = append(c.chunks, ev.Text)
		case core.EvChatStreamEnd:
			c.ends++
		}
		return nil
	}
}

func TestStreamEmitsChunksThenEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock_core.NewMockNotifier(ctrl)
	var c capture
	n.EXPECT().EmitTo(core.ConnID("conn"), gomock.Any()).DoAndReturn(c.record(t)).Times(4)

	sent := NewForwarder(n, NoDelay{}).Stream(context.Background(), "conn", Chars("abc"))
	if sent != 3 {
		t.Fatalf("sent = %d, want 3", sent)
	}
	if len(c.chunks) != 3 || strings.Join(c.chunks, "") != "abc" {
		t.Fatalf("chunks = %q", c.chunks)
	}
	if c.ends != 1 || c.order[len(c.order)-1] != core.EvChatStreamEnd {
		t.Fatalf("order = %v", c.order)
	}
}

func TestStreamEmptyTextOnlyEnds(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock_core.NewMockNotifier(ctrl)
	var c capture
	n.EXPECT().EmitTo(core.ConnID("conn"), gomock.Any()).DoAndReturn(c.record(t)).Times(1)

	if sent := NewForwarder(n, NoDelay{}).Stream(context.Background(), "conn", Chars("")); sent != 0 {
		t.Fatalf("sent = %d", sent)
	}
	if len(c.chunks) != 0 || c.ends != 1 {
		t.Fatalf("chunks = %q ends = %d", c.chunks, c.ends)
	}
}

func TestStreamAbortsOnClosedTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock_core.NewMockNotifier(ctrl)
	gomock.InOrder(
		n.EXPECT().EmitTo(gomock.Any(), gomock.Any()).Return(nil),
		n.EXPECT().EmitTo(gomock.Any(), gomock.Any()).Return(core.ErrConnClosed),
		n.EXPECT().EmitTo(gomock.Any(), gomock.Any()).Return(core.ErrConnClosed),
	)

	if sent := NewForwarder(n, NoDelay{}).Stream(context.Background(), "conn", Chars("abcdef")); sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}
}

func TestStreamRetriesOnBackpressure(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock_core.NewMockNotifier(ctrl)
	var c capture
	gomock.InOrder(
		n.EXPECT().EmitTo(gomock.Any(), gomock.Any()).Return(core.ErrBackpressure),
		n.EXPECT().EmitTo(gomock.Any(), gomock.Any()).DoAndReturn(c.record(t)).Times(2),
	)

	if sent := NewForwarder(n, NoDelay{}).Stream(context.Background(), "conn", Chars("a")); sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}
	if c.ends != 1 {
		t.Fatalf("ends = %d", c.ends)
	}
}

func TestStreamCancelledStillEnds(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock_core.NewMockNotifier(ctrl)
	var c capture
	n.EXPECT().EmitTo(gomock.Any(), gomock.Any()).DoAndReturn(c.record(t)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sent := NewForwarder(n, FixedDelay(time.Hour)).Stream(ctx, "conn", Chars("abc"))
	if sent != 0 || c.ends != 1 {
		t.Fatalf("sent = %d ends = %d", sent, c.ends)
	}
}

func TestFixedDelayWaits(t *testing.T) {
	start := time.Now()
	if err := FixedDelay(20 * time.Millisecond).Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("returned before the delay elapsed")
	}
}
