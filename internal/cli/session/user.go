package session

// Login types remembered alongside the session. They record which login
// surface was used and only influence the default redirect target; they are
// not an authorization control.
const (
	LoginTypeAdmin = "admin"
	LoginTypeUser  = "user"
)

// Roles issued by the portal backend. The backend only ever issues
// "user" and "admin"; any other value is treated as non-admin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the cached projection of the authenticated identity, persisted
// between runs. Field names match the client-side shape, not the snake_case
// wire shape returned by the API.
type User struct {
	ID         string `json:"id"`
	StudentID  string `json:"studentId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	Major      string `json:"major,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Phone      string `json:"phone,omitempty"`
	IsVerified bool   `json:"isVerified,omitempty"`
}

// IsAdmin reports whether the cached user carries the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
