package middleware

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/m3rciful/chroniclebot/core/metrics"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the parts of tele.Context the middlewares touch.
type fakeContext struct {
	tele.Context
	update tele.Update
	store     map[string]any
	sent      int
	responded int
}

func newFakeContext(updateID int, userID int64, callback bool) *fakeContext {
	user := &tele.User{ID: userID, Username: "reader"}
	upd := tele.Update{ID: updateID}
	if callback {
		upd.Callback = &tele.Callback{Sender: user, Data: "dates"}
	} else {
		upd.Message = &tele.Message{Sender: user, Chat: &tele.Chat{ID: userID, Type: tele.ChatPrivate}, Text: "/start"}
	}
	return &fakeContext{update: upd, store: map[string]any{}}
}

func (f *fakeContext) Update() tele.Update { return f.update }
func (f *fakeContext) Callback() *tele.Callback {
	return f.update.Callback
}
func (f *fakeContext) Sender() *tele.User {
	if f.update.Callback != nil {
		return f.update.Callback.Sender
	}
	return f.update.Message.Sender
}
func (f *fakeContext) Chat() *tele.Chat {
	if f.update.Message != nil {
		return f.update.Message.Chat
	}
	return nil
}
func (f *fakeContext) Text() string {
	if f.update.Message != nil {
		return f.update.Message.Text
	}
	return ""
}
func (f *fakeContext) Get(key string) any      { return f.store[key] }
func (f *fakeContext) Set(key string, val any) { f.store[key] = val }
func (f *fakeContext) Send(any, ...any) error {
	f.sent++
	return nil
}
func (f *fakeContext) EditOrSend(any, ...any) error {
	f.sent++
	return nil
}
func (f *fakeContext) Respond(...*tele.CallbackResponse) error {
	f.responded++
	return nil
}

func TestRateLimitDropsBurstsPerUser(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	limited := 0
	collector := metrics.New()
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		Metrics:   collector,
		OnLimited: func(tele.Context) error { limited++; return nil },
		now:       func() time.Time { return clock },
	})
	handled := 0
	h := mw(func(tele.Context) error { handled++; return nil })

	_ = h(newFakeContext(1, 7, false))
	_ = h(newFakeContext(2, 7, false))
	_ = h(newFakeContext(3, 8, false))
	clock = clock.Add(2 * time.Second)
	_ = h(newFakeContext(4, 7, false))

	if handled != 3 || limited != 1 {
		t.Fatalf("handled=%d limited=%d, want 3 and 1", handled, limited)
	}
	const want = `
# HELP chroniclebot_rate_limited_total Updates dropped by the rate limiter
# TYPE chroniclebot_rate_limited_total counter
chroniclebot_rate_limited_total 1
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(want), "chroniclebot_rate_limited_total"); err != nil {
		t.Fatal(err)
	}
}

func TestRateLimitAnswersDroppedButtonPress(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: 300 * time.Millisecond,
		now:      func() time.Time { return clock },
	})
	handled := 0
	h := mw(func(c tele.Context) error {
		handled++
		return c.Respond()
	})

	first := newFakeContext(1, 7, true)
	_ = h(first)
	clock = clock.Add(100 * time.Millisecond)
	second := newFakeContext(2, 7, true)
	_ = h(second)

	if handled != 1 {
		t.Fatalf("handled = %d, want 1", handled)
	}
	if first.responded != 1 || second.responded != 1 {
		t.Fatalf("responded = %d and %d, want 1 and 1", first.responded, second.responded)
	}

	msg := newFakeContext(3, 7, false)
	_ = h(msg)
	if msg.responded != 0 || msg.sent != 0 {
		t.Fatalf("dropped message got a reply: responded=%d sent=%d", msg.responded, msg.sent)
	}
}

func TestUserWindowPrunesIdleUsers(t *testing.T) {
	w := newUserWindow(time.Second)
	start := time.Unix(1700000000, 0)
	for id := int64(1); id <= 5; id++ {
		if !w.allow(id, start) {
			t.Fatalf("user %d limited on first update", id)
		}
	}
	if w.allow(3, start.Add(500*time.Millisecond)) {
		t.Fatal("user 3 passed inside the interval")
	}
	if !w.allow(9, start.Add(2*time.Second)) {
		t.Fatal("user 9 limited on first update")
	}
	if got := w.size(); got != 1 {
		t.Fatalf("window holds %d users, want 1", got)
	}
}

func TestRateLimitExcludesKinds(t *testing.T) {
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Hour,
		Exclude:  map[string]struct{}{KindCallback: {}},
	})
	handled := 0
	h := mw(func(tele.Context) error { handled++; return nil })
	for i := 0; i < 3; i++ {
		_ = h(newFakeContext(i, 7, true))
	}
	if handled != 3 {
		t.Fatalf("handled = %d, want 3", handled)
	}
}

func TestMessageMetricsCountsSends(t *testing.T) {
	collector := metrics.New()
	h := MessageMetricsMiddleware(collector)(func(c tele.Context) error {
		if err := c.Send("hi"); err != nil {
			return err
		}
		return c.EditOrSend("menu", &tele.SendOptions{ReplyMarkup: &tele.ReplyMarkup{}})
	})
	counted := newFakeContext(1, 7, true)
	if err := h(counted); err != nil {
		t.Fatal(err)
	}

	msgs, kb := GetCounters(counted)
	if msgs != 2 || !kb {
		t.Fatalf("counters = %d, %v", msgs, kb)
	}
	if counted.sent != 2 {
		t.Fatalf("sent = %d", counted.sent)
	}
	const want = `
# HELP chroniclebot_updates_total Telegram updates received, by kind
# TYPE chroniclebot_updates_total counter
chroniclebot_updates_total{kind="callback"} 1
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(want), "chroniclebot_updates_total"); err != nil {
		t.Fatal(err)
	}
}

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	err := h(newFakeContext(1, 7, false))
	var pe *ErrPanic
	if !errors.As(err, &pe) || pe.Value != "boom" {
		t.Fatalf("err = %v", err)
	}
}

func TestLoggerMiddlewareStoresRID(t *testing.T) {
	c := newFakeContext(36, 35, false)
	if err := LoggerMiddleware(func(tele.Context) error { return nil })(c); err != nil {
		t.Fatal(err)
	}
	if rid, _ := c.Get("rid").(string); rid != "36:35:35" {
		t.Fatalf("rid = %q", rid)
	}
}

func TestSeenUpdatesDedup(t *testing.T) {
	s := &seenUpdates{seen: map[int]time.Time{}}
	now := time.Now()
	if !s.firstTime(1, now) || s.firstTime(1, now) {
		t.Fatal("second sighting within window must be suppressed")
	}
	if !s.firstTime(1, now.Add(dedupWindow+time.Second)) {
		t.Fatal("entry must expire after the window")
	}
}
