package session

import "github.com/golang-jwt/jwt/v5"

// usernameFromToken reads a display name out of a JWT without verifying it.
// The signature is the server's business; an opaque or malformed token just
// yields "".
func usernameFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	if name, ok := claims["username"].(string); ok && name != "" {
		return name
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}
