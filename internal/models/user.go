package models

// User is the account summary returned by login and register.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is the login/register response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
