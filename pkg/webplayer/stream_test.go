package webplayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

func TestAttach(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "tok" {
			t.Errorf("token = %q", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		if err := conn.WriteJSON(Event{T: "expiration", P: json.RawMessage(`{"in":60}`)}); err != nil {
			t.Errorf("write failed: %v", err)
		}
		// echo one event back
		var ev Event
		if err := conn.ReadJSON(&ev); err == nil {
			_ = conn.WriteJSON(ev)
		}
	}))
	defer ts.Close()

	tr := &fakeTransport{fetch: func(string, string, any) (json.RawMessage, error) {
		return json.RawMessage(fmt.Sprintf(`{"identifier":"S1","url":%q,"token":"tok"}`, ts.URL)), nil
	}}
	c, _ := testClient(tr)
	if _, err := c.Create(context.Background(), 60, nil); err != nil {
		t.Fatal(err)
	}

	stream, err := c.Attach(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()

	ev, err := stream.Recv()
	if err != nil {
		t.Fatal(err)
	}
	if ev.T != "expiration" {
		t.Errorf("event type = %q, want expiration", ev.T)
	}

	if err := stream.Send(Event{T: "ping"}); err != nil {
		t.Fatal(err)
	}
	if ev, err = stream.Recv(); err != nil || ev.T != "ping" {
		t.Errorf("echo = %+v (%v), want ping", ev, err)
	}
}

func TestAttachWithoutSession(t *testing.T) {
	c, _ := testClient(&fakeTransport{})
	if _, err := c.Attach(context.Background()); err != ErrNoSession {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}
