package entity

import "time"

// Turn is one line of a session transcript.
type Turn struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDTO struct {
	ID        string    `json:"session_id"`
	Ready     bool      `json:"ready"`
	TurnCount int       `json:"turn_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSessionResponse struct {
	ID string `json:"session_id"`
}

type AskRequest struct {
	Query string `json:"query"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type ListTurnsResponse struct {
	Turns []Turn `json:"turns"`
}

type DeleteSessionResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
