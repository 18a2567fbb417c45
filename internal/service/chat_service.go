package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-bookrec-be/internal/config"
	"ai-bookrec-be/internal/constant"
	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/pkg/logger"
	"ai-bookrec-be/internal/repository/catalog"
	"ai-bookrec-be/internal/repository/memory"
	"ai-bookrec-be/pkg/extractor"
	"ai-bookrec-be/pkg/rag"
	"ai-bookrec-be/pkg/recommend"
	"ai-bookrec-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const maxRecommendedTitles = 3

// IChatService defines the interview turn-processing interface
type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

// chatService is the recommendation session engine. Each turn accumulates
// extracted interest keywords, decides readiness, and either commits to
// validated recommendations or falls back to a follow-up question.
type chatService struct {
	userRepo    *memory.UserRepository
	sessionRepo *memory.SessionRepository
	catalogRepo *catalog.Repository
	extractor   extractor.KeywordExtractor
	retrieval   rag.RetrievalClient
	publisher   message.Publisher
	topicName   string
	engineCfg   config.EngineConfig
	log         logger.ILogger
}

func NewChatService(
	userRepo *memory.UserRepository,
	sessionRepo *memory.SessionRepository,
	catalogRepo *catalog.Repository,
	keywordExtractor extractor.KeywordExtractor,
	retrieval rag.RetrievalClient,
	publisher message.Publisher,
	engineCfg config.EngineConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		catalogRepo: catalogRepo,
		extractor:   keywordExtractor,
		retrieval:   retrieval,
		publisher:   publisher,
		topicName:   engineCfg.ClassifyTopicName,
		engineCfg:   engineCfg,
		log:         log,
	}
}

// SendChat processes one interview turn
func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	name, found := cs.userRepo.GetName(request.UserId)
	if !found {
		return nil, ErrUnknownUser
	}

	// Domain gate (simplest engine variant). Declined messages leave the
	// session untouched.
	if cs.engineCfg.DomainFilterEnabled && !containsTriggerTerm(request.UserMessage) {
		return &dto.SendChatResponse{
			ResponseText: constant.DeclineOutsideDomainMessage,
			CanRecommend: false,
		}, nil
	}

	cs.sessionRepo.Mutate(request.UserId, func(s *store.Session) {
		s.AppendMessage(store.RoleUser, request.UserMessage)
	})

	// Extraction failure degrades to an empty list; the turn proceeds
	terms := cs.extractor.Extract(ctx, request.UserMessage)
	if len(terms) == 0 {
		cs.log.Warn("chat", "keyword extraction yielded no terms", map[string]interface{}{
			"user_id": request.UserId,
		})
	}

	session := cs.sessionRepo.Mutate(request.UserId, func(s *store.Session) {
		recommend.Accumulate(s, terms)
	})

	cs.log.Info("chat", "turn accumulated", map[string]interface{}{
		"user_id":  request.UserId,
		"keywords": len(session.Keywords),
	})

	if recommend.IsReady(session, cs.engineCfg.ReadyThreshold) {
		response, committed, err := cs.attemptRecommendation(ctx, request.UserId, name, session)
		if err != nil {
			return nil, err
		}
		if committed {
			return response, nil
		}
		// No valid candidates: fall through to the follow-up path in the
		// same turn, never an empty success.
	}

	return cs.askFollowUp(ctx, request.UserId)
}

// attemptRecommendation runs the focused retrieval query and validates the
// candidates. Returns committed=false when the session should fall back to
// interviewing.
func (cs *chatService) attemptRecommendation(
	ctx context.Context,
	userID, name string,
	session *store.Session,
) (*dto.SendChatResponse, bool, error) {

	raw, err := cs.retrieval.Query(ctx, rag.QueryRequest{
		Query:        buildTurnQuery(session.UserTurns()),
		SystemPrompt: constant.RecommenderSystemPromptV1,
		History:      historyTurns(session),
		Mode:         rag.ModeFocused,
	})
	if err != nil {
		if errors.Is(err, rag.ErrTimeout) {
			return cs.retryPromptResponse(userID), true, nil
		}
		return nil, false, fmt.Errorf("recommendation query failed: %w", err)
	}

	extraction := rag.ExtractTitles(raw)
	if !extraction.Present {
		cs.log.Warn("chat", "candidate extraction failed", map[string]interface{}{
			"user_id": userID,
			"reason":  extraction.Reason,
		})
	}

	validated := recommend.ValidateCandidates(extraction.Titles, cs.catalogRepo.Titles())
	if len(validated) > maxRecommendedTitles {
		validated = validated[:maxRecommendedTitles]
	}

	if len(validated) == 0 {
		// Zero-candidate recovery: revert and keep interviewing
		cs.sessionRepo.Mutate(userID, func(s *store.Session) {
			s.CanRecommend = false
			s.RecommendedTitles = []string{}
		})
		cs.log.Info("chat", "no candidates validated, back to interviewing", map[string]interface{}{
			"user_id":    userID,
			"candidates": len(extraction.Titles),
		})
		return nil, false, nil
	}

	confirmation := fmt.Sprintf("%s님, 말씀해주신 관심사를 바탕으로 '%s' 등 %d권을 골라봤어요. 추천 목록에서 확인해보세요!",
		name, validated[0], len(validated))

	cs.sessionRepo.Mutate(userID, func(s *store.Session) {
		s.RecommendedTitles = validated
		s.CanRecommend = true
		s.AppendMessage(store.RoleAssistant, confirmation)
	})

	// Fire-and-forget reader classification; its failure never affects
	// the turn's result.
	cs.publishClassifyJob(userID)

	return &dto.SendChatResponse{
		ResponseText: confirmation,
		CanRecommend: true,
	}, true, nil
}

// askFollowUp generates the next interview question
func (cs *chatService) askFollowUp(ctx context.Context, userID string) (*dto.SendChatResponse, error) {
	// GetOrCreate: the entry could have been purged since the last Mutate
	session := cs.sessionRepo.GetOrCreate(userID)

	followUp, err := cs.retrieval.Query(ctx, rag.QueryRequest{
		Query:        buildTurnQuery(session.UserTurns()),
		SystemPrompt: constant.InterviewerSystemPromptV1,
		History:      historyTurns(session),
		Mode:         rag.ModeExploration,
	})
	if err != nil {
		if errors.Is(err, rag.ErrTimeout) {
			return cs.retryPromptResponse(userID), nil
		}
		return nil, fmt.Errorf("follow-up query failed: %w", err)
	}

	cs.sessionRepo.Mutate(userID, func(s *store.Session) {
		s.AppendMessage(store.RoleAssistant, followUp)
	})

	return &dto.SendChatResponse{
		ResponseText: followUp,
		CanRecommend: false,
	}, nil
}

func (cs *chatService) retryPromptResponse(userID string) *dto.SendChatResponse {
	cs.sessionRepo.Mutate(userID, func(s *store.Session) {
		s.AppendMessage(store.RoleAssistant, constant.RetrievalRetryMessage)
	})
	return &dto.SendChatResponse{
		ResponseText: constant.RetrievalRetryMessage,
		CanRecommend: false,
	}
}

func (cs *chatService) publishClassifyJob(userID string) {
	if cs.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishClassifyUserMessage{UserId: userID})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := cs.publisher.Publish(cs.topicName, msg); err != nil {
		cs.log.Warn("chat", "failed to publish classify job", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

// buildTurnQuery concatenates the user turns, oldest first
func buildTurnQuery(userTurns []string) string {
	return strings.Join(userTurns, "\n")
}

func historyTurns(session *store.Session) []rag.HistoryTurn {
	turns := make([]rag.HistoryTurn, 0, len(session.Messages))
	for _, m := range session.Messages {
		turns = append(turns, rag.HistoryTurn{Role: m.Role, Content: m.Content})
	}
	return turns
}

func containsTriggerTerm(message string) bool {
	for _, term := range constant.DomainTriggerTerms {
		if strings.Contains(message, term) {
			return true
		}
	}
	return false
}
