package notifier

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/dashboard"
	"BCVMonitor/internal/normalizer"
)

type fakeTelegram struct {
	mu       sync.Mutex
	messages []string
	updates  string
	served   bool
}

func (f *fakeTelegram) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var payload map[string]string
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			if payload["chat_id"] != "42" || payload["parse_mode"] != "HTML" {
				t.Errorf("unexpected payload %v", payload)
			}
			f.mu.Lock()
			f.messages = append(f.messages, payload["text"])
			f.mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			f.mu.Lock()
			body := `{"ok":true,"result":[]}`
			if !f.served {
				body = f.updates
				f.served = true
			}
			f.mu.Unlock()
			if body == `{"ok":true,"result":[]}` {
				time.Sleep(20 * time.Millisecond)
			}
			w.Write([]byte(body))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (f *fakeTelegram) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func newTestNotifier(t *testing.T, f *fakeTelegram) *TelegramNotifier {
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	n := NewTelegramNotifier("token", "42", "", logger)
	n.APIBase = srv.URL
	return n
}

type fakeDashboard struct {
	view      dashboard.View
	refreshOK bool
	refreshes int
	auto      []bool
}

func (d *fakeDashboard) Snapshot() dashboard.View    { return d.view }
func (d *fakeDashboard) Refresh(context.Context) bool { d.refreshes++; return d.refreshOK }
func (d *fakeDashboard) SetAutoRefresh(enabled bool)  { d.auto = append(d.auto, enabled) }

func fallbackView(notice string) dashboard.View {
	rec := normalizer.New().FallbackRecord(time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC))
	return dashboard.View{State: dashboard.ErrorDisplayed, Record: &rec, Notice: notice}
}

func TestSend(t *testing.T) {
	f := &fakeTelegram{}
	n := newTestNotifier(t, f)
	if err := n.Send(context.Background(), "hola"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := f.sent(); len(got) != 1 || got[0] != "hola" {
		t.Errorf("unexpected messages %v", got)
	}
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier("bad", "42", "", nil)
	n.APIBase = srv.URL
	err := n.Send(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Errorf("expected API error, got %v", err)
	}
}

func TestPublish_OnlyNewNotices(t *testing.T) {
	f := &fakeTelegram{}
	n := newTestNotifier(t, f)
	ctx := context.Background()

	n.Publish(ctx, dashboard.View{State: dashboard.Displaying})
	n.Publish(ctx, fallbackView(dashboard.NoticePrefix+"timeout"))
	n.Publish(ctx, fallbackView(dashboard.NoticePrefix+"timeout"))
	n.Publish(ctx, dashboard.View{State: dashboard.Displaying})
	n.Publish(ctx, fallbackView(dashboard.NoticePrefix+"timeout"))

	got := f.sent()
	if len(got) != 2 {
		t.Fatalf("expected 2 failure messages, got %d", len(got))
	}
	if !strings.Contains(got[0], "Error al obtener los datos del BCV. timeout") {
		t.Errorf("unexpected message %q", got[0])
	}
}

func TestCommands(t *testing.T) {
	d := &fakeDashboard{view: fallbackView(""), refreshOK: true}
	handle := Commands(d)
	ctx := context.Background()

	if reply := handle(ctx, "/tasas"); !strings.Contains(reply, "Yuan chino") {
		t.Errorf("expected cards in reply, got %q", reply)
	}
	if reply := handle(ctx, "/refresh"); !strings.Contains(reply, "141,88") || d.refreshes != 1 {
		t.Errorf("expected refreshed cards, got %q", reply)
	}
	d.refreshOK = false
	if reply := handle(ctx, "/refresh"); !strings.Contains(reply, "en curso") {
		t.Errorf("expected in-flight reply, got %q", reply)
	}
	handle(ctx, "/auto off")
	handle(ctx, "/AUTO ON")
	if len(d.auto) != 2 || d.auto[0] || !d.auto[1] {
		t.Errorf("unexpected auto toggles %v", d.auto)
	}
	for _, cmd := range []string{"", "/auto", "/auto maybe", "hello"} {
		if reply := handle(ctx, cmd); reply != helpText {
			t.Errorf("%q: expected help, got %q", cmd, reply)
		}
	}
}

func TestStartPolling(t *testing.T) {
	f := &fakeTelegram{updates: `{"ok":true,"result":[{"update_id":7,"message":{"text":" /tasas "}}]}`}
	n := newTestNotifier(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.StartPolling(ctx, func(_ context.Context, cmd string) string {
			received <- cmd
			return "respuesta"
		})
	}()

	select {
	case cmd := <-received:
		if cmd != "/tasas" {
			t.Errorf("expected trimmed command, got %q", cmd)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("command not received")
	}

	deadline := time.Now().Add(3 * time.Second)
	for len(f.sent()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	if got := f.sent(); len(got) != 1 || got[0] != "respuesta" {
		t.Errorf("expected reply to be sent, got %v", got)
	}
}

var _ dashboard.Sink = (*TelegramNotifier)(nil)
