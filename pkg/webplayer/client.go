// Package webplayer is a client for the web player session API: ephemeral,
// time-limited streaming sessions tied to a cloud project/instance pair.
// A session exposes a URL and a token for embedding the player.
package webplayer

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloudplay/webplayer/pkg/logger"
)

// Resource is the REST collection consumed by the client.
const Resource = "webplayer"

// Transport performs one authenticated request against the base project
// endpoint and returns the raw JSON body. Non-2xx responses surface as
// *Error. Timeouts and cancellation belong to the implementation.
type Transport interface {
	Fetch(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// Client keeps the last known state of a single web player session in sync
// with the server. It is not safe for concurrent use: operations on one
// client are expected to be serialized by the caller.
type Client struct {
	transport Transport
	log       *logger.Logger

	session   Session
	onDestroy func()
}

// New returns a client with a blank session record. No network calls.
func New(t Transport, project, instance string, features Features, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		transport: t,
		log:       log,
		session:   Session{ProjectID: project, InstanceID: instance, Features: features},
	}
}

// Info returns the last known session state. It reflects server truth only
// after a successful Create or Refresh call.
func (c *Client) Info() Session { return c.session }

// Adopt points the client at an existing server-side session without a
// network call. A following Refresh pulls its state.
func (c *Client) Adopt(sessionID string) {
	c.session = c.session.reset()
	c.session.Identifier = sessionID
}

// Sessions lists every known session of the project behind t.
func Sessions(ctx context.Context, t Transport) ([]Session, error) {
	raw, err := t.Fetch(ctx, http.MethodGet, Resource, nil)
	if err != nil {
		return nil, err
	}
	var list []Session
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Refresh re-reads the session state from the server and merges it into
// the local record. Without a session identifier it is a no-op. When the
// server has no matching record anymore (expired or deleted out-of-band)
// the local state, identifier included, is kept and a warning is logged;
// whether that case should count as destroyed is left to the caller.
func (c *Client) Refresh(ctx context.Context) (Session, error) {
	if !c.session.Live() {
		return c.session, nil
	}
	raw, err := c.transport.Fetch(ctx, http.MethodGet, Resource+"/"+c.session.Identifier, nil)
	if err != nil {
		return c.session, err
	}
	var found []*Patch
	if err := json.Unmarshal(raw, &found); err != nil || len(found) == 0 || found[0] == nil {
		c.log.Warn().
			Str("session", c.session.Identifier).
			Msg("the server has no state for the session")
		return c.session, nil
	}
	c.session = c.session.Apply(*found[0])
	return c.session, nil
}

type createRequest struct {
	ProjectID  string   `json:"projectId"`
	InstanceID string   `json:"instanceId"`
	Features   Features `json:"features"`
	ExpiresIn  int      `json:"expiresIn"`
}

// Create asks the server for a new session lasting expiresIn seconds and
// merges the response into the local record. The expiresIn value is not
// validated locally. onDestroy, when not nil, fires once after a later
// Destroy call resolves; it replaces any previously stored callback
// without invoking it.
func (c *Client) Create(ctx context.Context, expiresIn int, onDestroy func()) (Session, error) {
	raw, err := c.transport.Fetch(ctx, http.MethodPost, Resource, createRequest{
		ProjectID:  c.session.ProjectID,
		InstanceID: c.session.InstanceID,
		Features:   c.session.Features,
		ExpiresIn:  expiresIn,
	})
	if err != nil {
		return c.session, err
	}
	var p Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		return c.session, err
	}
	c.session = c.session.Apply(p)
	c.onDestroy = onDestroy
	return c.session, nil
}

// Destroy deletes the session with sessionID, or the locally stored one
// when sessionID is empty. The local state is cleared before the request
// goes out; a failed DELETE does not restore it. The stored destroy
// callback fires exactly once after the call resolves, success or not,
// and is then discarded. Returns the raw DELETE response.
func (c *Client) Destroy(ctx context.Context, sessionID string) (json.RawMessage, error) {
	id := sessionID
	if id == "" {
		id = c.session.Identifier
	}
	done := c.onDestroy
	c.onDestroy = nil
	c.session = c.session.reset()

	raw, err := c.transport.Fetch(ctx, http.MethodDelete, Resource+"/"+id, nil)
	if done != nil {
		done()
	}
	return raw, err
}
