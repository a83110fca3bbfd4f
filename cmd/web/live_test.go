package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"playoh/internal/events"
)

func TestLiveFeedRelaysDeletions(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	srv := httptest.NewServer(app.mount())
	t.Cleanup(srv.Close)
	dev := newTestDevice(t, app)
	dev.signIn(t, false)

	header := http.Header{}
	header.Add("Cookie", dev.cookie.Name+"="+dev.cookie.Value)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/tabs/home/live", header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for app.bus.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("live handler never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	app.bus.Publish(events.Event{Name: events.ScheduleDeleted, ScheduleID: 42})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got events.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Name != events.ScheduleDeleted || got.ScheduleID != 42 {
		t.Errorf("event = %+v", got)
	}
}

func TestLiveFeedNeedsSession(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	srv := httptest.NewServer(app.mount())
	t.Cleanup(srv.Close)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/tabs/home/live", nil)
	if err == nil {
		t.Fatal("dial succeeded without a session")
	}
	if resp == nil || resp.StatusCode != http.StatusSeeOther {
		t.Errorf("response = %v, want a redirect to login", resp)
	}
}
