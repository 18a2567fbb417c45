package store

// Message is one turn in the interview transcript
type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Session represents the active per-user interview state in memory
type Session struct {
	UserID string `json:"user_id"`

	// Append-only transcript of (role, text) turns
	Messages []Message `json:"messages"`

	// Ordered, de-duplicated interest keywords extracted across turns
	Keywords []string `json:"keywords"`

	// Flips to true once a retrieval attempt produced validated titles.
	// Reverted to false inside the same turn if validation rejects everything.
	CanRecommend bool `json:"can_recommend"`

	// Up to three candidate titles, in the retrieval backend's order.
	// Only meaningful while CanRecommend is true.
	RecommendedTitles []string `json:"recommended_titles"`

	// Best-effort reader classification, filled in by the background
	// classifier after a successful recommendation. Absence is not an error.
	UserType       string `json:"user_type,omitempty"`
	UserTypeReason string `json:"user_type_reason,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NewSession returns an empty interviewing session for the given user
func NewSession(userID string) *Session {
	return &Session{
		UserID:            userID,
		Messages:          []Message{},
		Keywords:          []string{},
		RecommendedTitles: []string{},
	}
}

// AppendMessage appends one turn to the transcript
func (s *Session) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// UserTurns returns the user-side transcript, oldest first
func (s *Session) UserTurns() []string {
	var turns []string
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			turns = append(turns, m.Content)
		}
	}
	return turns
}
