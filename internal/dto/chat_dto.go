package dto

// SendChatRequest is one interview turn from the client
type SendChatRequest struct {
	UserMessage string `json:"userMessage" validate:"required"`
	UserId      string `json:"userId" validate:"required,uuid4"`
}

// SendChatResponse carries the engine's reply for the turn. CanRecommend
// tells the client to move on to the recommendation fetch.
type SendChatResponse struct {
	ResponseText string `json:"responseText"`
	CanRecommend bool   `json:"canRecommend"`
}

// PublishClassifyUserMessage is the background classification job payload
type PublishClassifyUserMessage struct {
	UserId string `json:"user_id"`
}
