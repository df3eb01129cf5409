package client

import (
	"net/http"

	"github.com/yacinedz/siyaqa/client/session"
)

// bearerTransport injects the stored bearer token into every outgoing
// request. Requests go out untouched when no session is stored.
type bearerTransport struct {
	store *session.Store
	base  http.RoundTripper
}

func newBearerTransport(store *session.Store, base http.RoundTripper) *bearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{store: store, base: base}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if sess, state := t.store.Hydrate(); state == session.StateValid {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	return t.base.RoundTrip(req)
}
