package dto

// CreateSessionRequest represents the request body for opening a session.
type CreateSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SessionResponse represents the response for a freshly opened session.
type SessionResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
