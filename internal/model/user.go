package model

// Credentials is the body of both login and signup requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// User is the account created by signup.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
