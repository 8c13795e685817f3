package router

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/m3rciful/chroniclebot/core/metrics"
	tg "github.com/m3rciful/chroniclebot/core/telegram"
	"github.com/m3rciful/chroniclebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	update tele.Update
	store  map[string]any
}

func callbackContext(data string) *fakeContext {
	user := &tele.User{ID: 7}
	return &fakeContext{
		update: tele.Update{ID: 1, Callback: &tele.Callback{Sender: user, Data: data}},
		store:  map[string]any{},
	}
}

func textContext(text string) *fakeContext {
	user := &tele.User{ID: 7}
	return &fakeContext{
		update: tele.Update{ID: 2, Message: &tele.Message{Sender: user, Chat: &tele.Chat{ID: 7}, Text: text}},
		store:  map[string]any{},
	}
}

func (f *fakeContext) Update() tele.Update      { return f.update }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }
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

type codedErr struct{}

func (codedErr) Error() string { return "missing" }
func (codedErr) Code() string  { return "author not found" }

type plainErr struct{}

func (*plainErr) Error() string { return "plain" }

func TestDeriveErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{codedErr{}, "AUTHOR_NOT_FOUND"},
		{fmt.Errorf("render: %w", codedErr{}), "AUTHOR_NOT_FOUND"},
		{&plainErr{}, "PLAINERR"},
	}
	for _, tt := range tests {
		if got := deriveErrorCode(tt.err); got != tt.want {
			t.Errorf("deriveErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestNormalizeHandlerName(t *testing.T) {
	for in, want := range map[string]string{"/Start": "start", "": "unknown", " back main ": "back_main"} {
		if got := normalizeHandlerName(in); got != want {
			t.Errorf("normalizeHandlerName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCallbackRouteDelegatesToRegistry(t *testing.T) {
	reg := tg.NewRegistry()
	var got string
	reg.SetCallbackHandler(func(c tele.Context) error {
		got = c.Callback().Data
		return nil
	})
	collector := metrics.New()
	route := CallbackRoute(reg, CallbackOptions{
		Metrics: collector,
		Name:    func(code string) string { return strings.SplitN(code, "_", 2)[0] },
	})
	if route.Endpoint != tele.OnCallback {
		t.Fatalf("endpoint = %v", route.Endpoint)
	}

	c := callbackContext("event_2")
	if err := route.Handler(c); err != nil {
		t.Fatal(err)
	}
	if got != "event_2" {
		t.Fatalf("handler saw %q", got)
	}
	n, err := testutil.GatherAndCount(collector.Registry(), "chroniclebot_handler_duration_seconds")
	if err != nil || n != 1 {
		t.Fatalf("handler series = %d, %v", n, err)
	}
}

func TestCallbackRoutePropagatesError(t *testing.T) {
	reg := tg.NewRegistry()
	want := errors.New("edit failed")
	reg.SetCallbackHandler(func(tele.Context) error { return want })
	if err := CallbackRoute(reg, CallbackOptions{}).Handler(callbackContext("dates")); !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
}

func TestTextRoutes(t *testing.T) {
	reg := tg.NewRegistry()
	started := 0
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { started++; return nil },
		Description: "menu",
	})
	h := TextRoutes(reg, TextOptions{})[0].Handler

	if err := h(textContext("start")); err != nil {
		t.Fatal(err)
	}
	if err := h(textContext("привет")); err != nil {
		t.Fatal(err)
	}
	if started != 1 {
		t.Fatalf("start ran %d times", started)
	}
}

func TestCommandRoutesIncludeAliases(t *testing.T) {
	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { return nil },
		Description: "menu",
		Aliases:     []string{"menu"},
	})
	routes := CommandRoutes(reg, CommandRouteOptions{})
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(routes))
	}
	endpoints := map[any]bool{}
	for _, r := range routes {
		endpoints[r.Endpoint] = true
	}
	if !endpoints["/start"] || !endpoints["/menu"] {
		t.Fatalf("endpoints = %v", endpoints)
	}
}
