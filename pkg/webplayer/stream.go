package webplayer

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/gorilla/websocket"
)

// ErrNoSession is returned by Attach when the client has no live session.
var ErrNoSession = errors.New("webplayer: no live session")

// Event is one web player notification:
//
//	t - event type;
//	p - optional payload with arbitrary data.
type Event struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// Stream is an open event channel of a live session.
type Stream struct {
	conn *websocket.Conn
}

// Attach opens the event channel of the current session: the session URL
// dialed over websocket with the session token passed as a query param.
// The stream does not reconnect; a new session needs a new Attach.
func (c *Client) Attach(ctx context.Context) (*Stream, error) {
	if !c.session.Live() || c.session.URL == "" {
		return nil, ErrNoSession
	}
	u, err := url.Parse(c.session.URL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	q := u.Query()
	q.Set("token", c.session.Token)
	u.RawQuery = q.Encode()

	conn, res, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if res != nil {
			_ = res.Body.Close()
		}
		return nil, err
	}
	c.log.Debug().Str("url", u.String()).Msg("attached to the session")
	return &Stream{conn: conn}, nil
}

// Recv blocks until the next event arrives.
func (s *Stream) Recv() (Event, error) {
	var ev Event
	err := s.conn.ReadJSON(&ev)
	return ev, err
}

// Send pushes ev to the server.
func (s *Stream) Send(ev Event) error { return s.conn.WriteJSON(ev) }

func (s *Stream) Close() error { return s.conn.Close() }
