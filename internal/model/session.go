package model

// SessionClaims is the payload of a session JWT issued by password login.
type SessionClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Iat   int64  `json:"iat"`
	Exp   int64  `json:"exp"`
	Iss   string `json:"iss"`
}
