package model

// Conversation represents a stored prompt/response exchange.
// Timestamp is client-supplied and kept as a plain string; "sorted by time"
// queries order by its lexical value.
type Conversation struct {
	ID        int64  `json:"id"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// PageRequest carries pagination parameters down to the repository.
// Values are passed through as-is; bounds are the storage layer's problem.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the row offset for the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// ConversationPage wraps a page of results plus pagination metadata.
type ConversationPage struct {
	Content       []Conversation `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
}

// NewConversationPage builds the page envelope for a slice of results.
func NewConversationPage(content []Conversation, total int64, req PageRequest) ConversationPage {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return ConversationPage{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          req.Page,
		Size:          req.Size,
	}
}
