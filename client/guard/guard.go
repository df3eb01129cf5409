// Package guard decides whether a navigation may proceed based on the
// hydrated session and the roles a page allows.
package guard

import (
	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/core/user"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// State is the guard's view of the current navigation.
type State int

const (
	// StateLoading means the session has not been hydrated yet; nothing
	// may render.
	StateLoading State = iota
	StateUnauthenticated
	StateUnauthorized
	StateAuthorized
)

// Decision tells the caller what to do with the requested location.
type Decision struct {
	State State
	// RedirectTo is set for unauthenticated and unauthorized outcomes.
	RedirectTo string
	// ReturnTo remembers the requested location for a post-login redirect.
	ReturnTo string
}

// Evaluate re-runs on every navigation: an expired or cleared session takes
// effect on the next routing decision, not mid-render.
func Evaluate(store *session.Store, path string, allowed ...user.Role) Decision {
	sess, state := store.Hydrate()
	switch state {
	case session.StateEmpty:
		return Decision{State: StateUnauthenticated, RedirectTo: LoginPath, ReturnTo: path}
	case session.StateCorrupt:
		return Decision{State: StateUnauthorized, RedirectTo: UnauthorizedPath}
	}

	for _, role := range allowed {
		if sess.Role == role {
			return Decision{State: StateAuthorized}
		}
	}
	return Decision{State: StateUnauthorized, RedirectTo: UnauthorizedPath}
}

// DashboardPath maps a role to its landing page after login.
func DashboardPath(role user.Role) string {
	switch role {
	case user.RoleStudent:
		return "/student-dashboard"
	case user.RoleTeacher:
		return "/teacher-dashboard"
	case user.RoleManager:
		return "/manager-dashboard"
	case user.RoleAdmin:
		return "/admin-dashboard"
	}
	return LoginPath
}
