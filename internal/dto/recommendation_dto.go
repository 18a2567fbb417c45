package dto

// BookRecommendRequest fetches the committed recommendations for a user
type BookRecommendRequest struct {
	UserId string `json:"userId" validate:"required,uuid4"`
	Name   string `json:"name"`
}

type BookRecommendation struct {
	BookTitle   string `json:"bookTitle"`
	BookReason  string `json:"bookReason"`
	ImageUrl    string `json:"imageUrl"`
	BookUrl     string `json:"bookUrl"`
	BookSummary string `json:"bookSummary"`
	BookGenre   string `json:"bookGenre"`
}

type BookRecommendResponse struct {
	Recommendations []BookRecommendation `json:"recommendations"`
	Keywords        []string             `json:"keywords"`
	UserType        string               `json:"userType"`
	UserTypeReason  string               `json:"userTypeReason"`
}

// EmbeddingRecommendRequest is the legacy embedding-only path: no session
// engine, no retrieval backend, just keyword embeddings vs catalog vectors.
type EmbeddingRecommendRequest struct {
	UserId string `json:"userId" validate:"required,uuid4"`
}

type EmbeddingRecommendResponse struct {
	Recommendations []BookRecommendation `json:"recommendations"`
}
