package service

import (
	"context"
	"fmt"
	"strings"

	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/pkg/logger"
	"ai-bookrec-be/internal/repository/catalog"
	"ai-bookrec-be/internal/repository/memory"
	"ai-bookrec-be/pkg/embedding"
	"ai-bookrec-be/pkg/recommend"
	"ai-bookrec-be/pkg/store"
)

const reasonKeywordLimit = 5

// IRecommendationService serves the committed recommendations and the legacy
// embedding-only ranking path
type IRecommendationService interface {
	BookRecommend(ctx context.Context, request *dto.BookRecommendRequest) (*dto.BookRecommendResponse, error)
	EmbeddingRecommend(ctx context.Context, request *dto.EmbeddingRecommendRequest) (*dto.EmbeddingRecommendResponse, error)
}

type recommendationService struct {
	userRepo          *memory.UserRepository
	sessionRepo       *memory.SessionRepository
	catalogRepo       *catalog.Repository
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewRecommendationService(
	userRepo *memory.UserRepository,
	sessionRepo *memory.SessionRepository,
	catalogRepo *catalog.Repository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		userRepo:          userRepo,
		sessionRepo:       sessionRepo,
		catalogRepo:       catalogRepo,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

// BookRecommend resolves the session's committed titles against the catalog
func (rs *recommendationService) BookRecommend(ctx context.Context, request *dto.BookRecommendRequest) (*dto.BookRecommendResponse, error) {
	if !rs.userRepo.Exists(request.UserId) {
		return nil, ErrUnknownUser
	}

	session, found := rs.sessionRepo.Get(request.UserId)
	if !found || !session.CanRecommend {
		return nil, ErrNotReady
	}
	if len(session.RecommendedTitles) == 0 {
		// can_recommend without titles is a data-integrity problem, not
		// a "keep interviewing" state
		return nil, ErrEmptyRecommendations
	}

	recommendations := make([]dto.BookRecommendation, 0, len(session.RecommendedTitles))
	for _, title := range session.RecommendedTitles {
		book, ok := rs.catalogRepo.FindByCandidate(title)
		if !ok {
			rs.log.Warn("recommendation", "committed title missing from catalog", map[string]interface{}{
				"user_id": request.UserId,
				"title":   title,
			})
			continue
		}
		recommendations = append(recommendations, toRecommendationDTO(book))
	}

	if len(recommendations) == 0 {
		return nil, ErrNoCatalogMatch
	}

	return &dto.BookRecommendResponse{
		Recommendations: recommendations,
		Keywords:        session.Keywords,
		UserType:        session.UserType,
		UserTypeReason:  session.UserTypeReason,
	}, nil
}

// EmbeddingRecommend ranks the catalog against the mean embedding of the
// session's keywords. Stateless alternative to the session engine.
func (rs *recommendationService) EmbeddingRecommend(ctx context.Context, request *dto.EmbeddingRecommendRequest) (*dto.EmbeddingRecommendResponse, error) {
	if !rs.userRepo.Exists(request.UserId) {
		return nil, ErrUnknownUser
	}

	session, found := rs.sessionRepo.Get(request.UserId)
	if !found || len(session.Keywords) == 0 {
		return nil, ErrNoKeywords
	}

	var vectors [][]float32
	for _, keyword := range session.Keywords {
		res, err := rs.embeddingProvider.Generate(keyword, "RETRIEVAL_QUERY")
		if err != nil {
			rs.log.Warn("recommendation", "keyword embedding failed", map[string]interface{}{
				"keyword": keyword,
				"error":   err.Error(),
			})
			continue
		}
		vectors = append(vectors, res.Embedding.Values)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding generation failed for all %d keywords", len(session.Keywords))
	}

	queryVector := embedding.MeanVector(vectors)
	topIndices := recommend.TopK(queryVector, rs.catalogRepo.Vectors(), maxRecommendedTitles)

	recommendations := make([]dto.BookRecommendation, 0, len(topIndices))
	for _, idx := range topIndices {
		if book, ok := rs.catalogRepo.BookAt(idx); ok {
			recommendations = append(recommendations, toRecommendationDTO(book))
		}
	}

	return &dto.EmbeddingRecommendResponse{
		Recommendations: recommendations,
	}, nil
}

func toRecommendationDTO(book *store.Book) dto.BookRecommendation {
	words := book.KeywordWords(reasonKeywordLimit)
	reason := ""
	if len(words) > 0 {
		reason = fmt.Sprintf("%s 관련 주제", strings.Join(words, ", "))
	}
	return dto.BookRecommendation{
		BookTitle:   book.Title,
		BookReason:  reason,
		ImageUrl:    book.ImageURL,
		BookUrl:     book.BookURL,
		BookSummary: book.Summary,
		BookGenre:   book.ClassName,
	}
}
