package domain

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User is the authenticated actor held by a session. The backend embeds it
// in the token payload on sign-in/sign-up; it is never fetched separately.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user may use the admin affordances
// (create/edit/delete cafés, stats overview).
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
