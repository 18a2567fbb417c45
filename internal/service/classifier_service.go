package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-bookrec-be/internal/constant"
	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/pkg/logger"
	"ai-bookrec-be/internal/repository/memory"
	"ai-bookrec-be/pkg/llm"
	"ai-bookrec-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IClassifierService interface {
	Consume(ctx context.Context) error
}

// classifierService consumes classify jobs published after a recommendation
// commit and labels the reader type from the session's keywords. Everything
// here is best-effort: a failed classification is logged and dropped, it
// never blocks or retries into the chat path.
type classifierService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessionRepo *memory.SessionRepository
	llmProvider llm.LLMProvider
	log         logger.ILogger
}

func NewClassifierService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo *memory.SessionRepository,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IClassifierService {
	return &classifierService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		log:         log,
	}
}

func (cs *classifierService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *classifierService) processMessage(ctx context.Context, msg *message.Message) {
	// Best-effort job: every outcome Acks, nothing is worth redelivery
	defer msg.Ack()

	var payload dto.PublishClassifyUserMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("classifier", "failed to unmarshal classify job", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	session, found := cs.sessionRepo.Get(payload.UserId)
	if !found || len(session.Keywords) == 0 {
		cs.log.Warn("classifier", "no session keywords to classify", map[string]interface{}{
			"user_id": payload.UserId,
		})
		return
	}

	prompt := fmt.Sprintf("키워드: %s", strings.Join(session.Keywords, ", "))
	raw, err := cs.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.ClassifyUserSystemPromptV1},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.2))
	if err != nil {
		cs.log.Error("classifier", "classification request failed", map[string]interface{}{
			"user_id": payload.UserId,
			"error":   err.Error(),
		})
		return
	}

	userType, reason, ok := parseClassification(raw)
	if !ok {
		cs.log.Warn("classifier", "unparseable classification output", map[string]interface{}{
			"user_id": payload.UserId,
		})
		return
	}

	// Last write wins; the chat path never reads these mid-turn
	cs.sessionRepo.Mutate(payload.UserId, func(s *store.Session) {
		s.UserType = userType
		s.UserTypeReason = reason
	})

	cs.log.Info("classifier", "user classified", map[string]interface{}{
		"user_id":   payload.UserId,
		"user_type": userType,
	})
}

// parseClassification tolerates prose around the JSON object, same as the
// keyword extractor does
func parseClassification(raw string) (userType, reason string, ok bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", "", false
	}

	var parsed struct {
		UserType string `json:"userType"`
		Reason   string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return "", "", false
	}

	parsed.UserType = strings.TrimSpace(parsed.UserType)
	parsed.Reason = strings.TrimSpace(parsed.Reason)
	if parsed.UserType == "" {
		return "", "", false
	}
	return parsed.UserType, parsed.Reason, true
}
