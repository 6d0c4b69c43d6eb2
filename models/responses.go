package models

// SessionResponse is returned by register, login and refresh. The embedded
// user never carries its password hash or refresh token (both are excluded
// from JSON at the struct level).
type SessionResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RevealResponse is the single response shape that carries a decrypted
// password. No other representation of a credential ever includes it.
type RevealResponse struct {
	Password string `json:"password"`
}
