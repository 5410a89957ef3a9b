package webplayer

// Features is the set of named capability flags applied to a session at
// creation time, e.g. {"disableMobile": true}.
type Features map[string]bool

// Session is the last known state of a remote web player session.
// ProjectID, InstanceID and Features are fixed at construction; the rest
// is owned by the server and stays empty until a session is created.
// Identifier is empty exactly when no live server-side session is
// associated with the client.
type Session struct {
	Identifier string   `json:"identifier,omitempty"`
	ProjectID  string   `json:"projectId"`
	InstanceID string   `json:"instanceId"`
	Features   Features `json:"features,omitempty"`
	URL        string   `json:"url,omitempty"`
	Token      string   `json:"token,omitempty"`
	// ISO-8601 timestamp, passed through as-is
	Expiration string `json:"expiration,omitempty"`
}

// Live reports whether a server-side session is attached.
func (s Session) Live() bool { return s.Identifier != "" }

// reset drops every server-owned field and keeps the construction-time ones.
func (s Session) reset() Session {
	s.Identifier, s.URL, s.Token, s.Expiration = "", "", "", ""
	return s
}

// Patch is a partial session record as returned by the server.
// Nil fields were absent from the response and keep their current value.
type Patch struct {
	Identifier *string `json:"identifier"`
	URL        *string `json:"url"`
	Token      *string `json:"token"`
	Expiration *string `json:"expiration"`
}

// Apply shallow-merges p into s and returns the result. Only the
// server-owned fields take part in the merge: ProjectID, InstanceID and
// Features never change after construction.
func (s Session) Apply(p Patch) Session {
	if p.Identifier != nil {
		s.Identifier = *p.Identifier
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	if p.Token != nil {
		s.Token = *p.Token
	}
	if p.Expiration != nil {
		s.Expiration = *p.Expiration
	}
	return s
}
