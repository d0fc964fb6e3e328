package chat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ReplyShape tells which field of a chat reply carried the answer.
type ReplyShape int

const (
	ShapeNone ReplyShape = iota
	// {"message": {"content": "..."}}
	ShapeMessage
	// {"content": "..."}
	ShapeContent
)

func (s ReplyShape) String() string {
	switch s {
	case ShapeMessage:
		return "message"
	case ShapeContent:
		return "content"
	default:
		return "none"
	}
}

// Reply is a decoded successful chat response.
type Reply struct {
	Shape   ReplyShape
	Content string
}

var (
	ErrNoContent = errors.New("no content in response")
	ErrMalformed = errors.New("malformed chat response")
)

// UnknownMessage stands in when the service gives no error text.
const UnknownMessage = "Unknown error"

// UpstreamError is a non-200 answer of the chat service.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = UnknownMessage
	}
	return fmt.Sprintf("chat service returned %d: %s", e.StatusCode, msg)
}

type rawReply struct {
	Message *struct {
		Content *string `json:"content"`
	} `json:"message"`
	Content *string `json:"content"`
}

// ParseReply decodes a 200 body. The message.content shape wins over a
// top-level content field.
func ParseReply(body []byte) (Reply, error) {
	var raw rawReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch {
	case raw.Message != nil && raw.Message.Content != nil:
		return Reply{Shape: ShapeMessage, Content: *raw.Message.Content}, nil
	case raw.Content != nil:
		return Reply{Shape: ShapeContent, Content: *raw.Content}, nil
	default:
		return Reply{Shape: ShapeNone}, ErrNoContent
	}
}

// parseError extracts the "error" string of a non-200 body.
func parseError(statusCode int, body []byte) *UpstreamError {
	var raw struct {
		Error any `json:"error"`
	}
	upstream := &UpstreamError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &raw); err != nil {
		return upstream
	}

	switch v := raw.Error.(type) {
	case string:
		upstream.Message = v
	case nil:
	default:
		if b, err := json.Marshal(v); err == nil {
			upstream.Message = string(b)
		}
	}
	return upstream
}

// ErrorAnswer renders a failed chat call as the text shown to the user.
func ErrorAnswer(err error) string {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrNoContent):
		return "Error: No content in response."
	case errors.As(err, &upstream):
		if upstream.Message == "" {
			return "Error: " + UnknownMessage
		}
		return "Error: " + upstream.Message
	case err == nil:
		return "Error: " + UnknownMessage
	default:
		return "Error: " + err.Error()
	}
}
