// Package session provides the widget's view of the host session: a
// bearer token and a cached user profile, read from client-side
// persisted storage. The widget only ever reads session state; it is
// injected into the controller so nothing reaches for globals.
package session

// Profile is the cached user profile stored alongside the token.
type Profile struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Session exposes the two decision points the widget needs: whether a
// usable token is present (guest vs authenticated reporting, reward
// eligibility) and who the user is (excluded from ad matching).
type Session interface {
	// Token returns the bearer token, or "" when the session is a guest
	// session. An expired token counts as absent.
	Token() string
	// Profile returns the cached user profile and whether one exists.
	Profile() (Profile, bool)
}

// Authenticated reports whether s carries a usable token.
func Authenticated(s Session) bool { return s.Token() != "" }

// Static is a fixed session, useful for tests and embedding hosts that
// manage credentials themselves.
type Static struct {
	BearerToken string
	User        *Profile
}

func (s Static) Token() string { return s.BearerToken }

func (s Static) Profile() (Profile, bool) {
	if s.User == nil {
		return Profile{}, false
	}
	return *s.User, true
}
