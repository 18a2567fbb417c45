package service

import (
	"context"
	"testing"

	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/repository/memory"
	"ai-bookrec-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recommendFixture struct {
	service     IRecommendationService
	userRepo    *memory.UserRepository
	sessionRepo *memory.SessionRepository
	userID      string
}

func newRecommendFixture(t *testing.T, embedder *fakeEmbedder) *recommendFixture {
	t.Helper()

	userRepo := memory.NewUserRepository()
	sessionRepo := memory.NewSessionRepository()

	if embedder == nil {
		embedder = &fakeEmbedder{}
	}

	svc := NewRecommendationService(
		userRepo,
		sessionRepo,
		testCatalog(),
		embedder,
		noopLogger{},
	)

	return &recommendFixture{
		service:     svc,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		userID:      registeredUser(userRepo, "지민"),
	}
}

func TestBookRecommendUnknownUser(t *testing.T) {
	f := newRecommendFixture(t, nil)

	_, err := f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{
		UserId: "00000000-0000-4000-8000-000000000000",
	})

	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestBookRecommendNotReady(t *testing.T) {
	f := newRecommendFixture(t, nil)

	// no session at all
	_, err := f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{UserId: f.userID})
	require.ErrorIs(t, err, ErrNotReady)

	// session exists but has not committed
	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.Keywords = []string{"우주"}
	})
	_, err = f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{UserId: f.userID})
	require.ErrorIs(t, err, ErrNotReady)
}

func TestBookRecommendEmptyTitles(t *testing.T) {
	f := newRecommendFixture(t, nil)

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.CanRecommend = true
		s.RecommendedTitles = []string{}
	})

	_, err := f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{UserId: f.userID})
	require.ErrorIs(t, err, ErrEmptyRecommendations)
}

func TestBookRecommendResolvesCommittedTitles(t *testing.T) {
	f := newRecommendFixture(t, nil)

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.CanRecommend = true
		s.RecommendedTitles = []string{"어린왕자", "데미안"}
		s.Keywords = []string{"우정", "성장"}
		s.UserType = "감성 독자"
		s.UserTypeReason = "관계 중심의 키워드"
	})

	res, err := f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{UserId: f.userID})
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 2)

	first := res.Recommendations[0]
	assert.Equal(t, "어린왕자 이야기", first.BookTitle, "candidate resolves to the canonical record")
	assert.Equal(t, "우정, 성장 관련 주제", first.BookReason)
	assert.Equal(t, "http://img/1", first.ImageUrl)
	assert.Equal(t, "http://book/1", first.BookUrl)
	assert.Equal(t, "문학", first.BookGenre)

	assert.Equal(t, []string{"우정", "성장"}, res.Keywords)
	assert.Equal(t, "감성 독자", res.UserType)
	assert.Equal(t, "관계 중심의 키워드", res.UserTypeReason)
}

func TestBookRecommendSkipsUnresolvableTitles(t *testing.T) {
	f := newRecommendFixture(t, nil)

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.CanRecommend = true
		s.RecommendedTitles = []string{"투명인간", "데미안"}
	})

	res, err := f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{UserId: f.userID})
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "데미안", res.Recommendations[0].BookTitle)
}

func TestBookRecommendNoCatalogMatch(t *testing.T) {
	f := newRecommendFixture(t, nil)

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.CanRecommend = true
		s.RecommendedTitles = []string{"투명인간"}
	})

	_, err := f.service.BookRecommend(context.Background(), &dto.BookRecommendRequest{UserId: f.userID})
	require.ErrorIs(t, err, ErrNoCatalogMatch)
}

func TestEmbeddingRecommendNoKeywords(t *testing.T) {
	f := newRecommendFixture(t, nil)

	_, err := f.service.EmbeddingRecommend(context.Background(), &dto.EmbeddingRecommendRequest{UserId: f.userID})
	require.ErrorIs(t, err, ErrNoKeywords)
}

func TestEmbeddingRecommendRanksCatalog(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"우주": {1, 0},
		"과학": {1, 0},
	}}
	f := newRecommendFixture(t, embedder)

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.Keywords = []string{"우주", "과학"}
	})

	res, err := f.service.EmbeddingRecommend(context.Background(), &dto.EmbeddingRecommendRequest{UserId: f.userID})
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 3)

	// mean vector is (1,0): 어린왕자 (1,0) first, 코스모스 (1,1) second,
	// 데미안 (0,1) third, the embedding-less record last and cut off
	assert.Equal(t, "어린왕자 이야기", res.Recommendations[0].BookTitle)
	assert.Equal(t, "코스모스", res.Recommendations[1].BookTitle)
	assert.Equal(t, "데미안", res.Recommendations[2].BookTitle)
}

func TestEmbeddingRecommendSkipsFailedKeywords(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"우주": {1, 1},
	}}
	f := newRecommendFixture(t, embedder)

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.Keywords = []string{"우주", "미지어휘"}
	})

	res, err := f.service.EmbeddingRecommend(context.Background(), &dto.EmbeddingRecommendRequest{UserId: f.userID})
	require.NoError(t, err, "one failed embedding should not fail the request")
	assert.NotEmpty(t, res.Recommendations)
}

func TestEmbeddingRecommendAllEmbeddingsFail(t *testing.T) {
	f := newRecommendFixture(t, &fakeEmbedder{})

	f.sessionRepo.Mutate(f.userID, func(s *store.Session) {
		s.Keywords = []string{"우주"}
	})

	_, err := f.service.EmbeddingRecommend(context.Background(), &dto.EmbeddingRecommendRequest{UserId: f.userID})
	require.Error(t, err)
}
