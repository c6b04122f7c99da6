package domain

// User is the staff profile held by an authenticated session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Valid reports whether u identifies a user. A null or empty profile
// payload decodes to a User that is not valid.
func (u User) Valid() bool {
	return u.ID != ""
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the payload of a successful POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
