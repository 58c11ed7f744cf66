package session

// CookieName carries the session token between the browser and the service.
const CookieName = "msa_session"

// Session is the record identifying the currently signed-in user.
// There is at most one per token; it never expires on its own.
type Session struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}
