package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/securewatch/backend/pkg/db/models"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/openai"
)

const (
	// historyLimit caps how much of the log a single history call returns.
	historyLimit = 200

	systemPrompt = "You are the shopping assistant for a security camera retailer. " +
		"Help visitors choose cameras, recorders and accessories, explain resolution, " +
		"night vision, PoE and storage trade-offs, and answer installation questions. " +
		"Keep answers short and practical. If a question is unrelated to video " +
		"surveillance or the store, politely steer the visitor back."

	fallbackResponse = "Sorry, I am having trouble answering right now. " +
		"Please try again in a moment or contact our support team."
)

// Completer is the slice of the AI client the chat façade needs.
type Completer interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}

// Service answers storefront questions and keeps the exchange log.
type Service interface {
	Ask(ctx context.Context, sessionID, message string) (AskResult, error)
	History(ctx context.Context, sessionID string) ([]ExchangeDTO, error)
}

// ServiceParams carries the chat service dependencies.
type ServiceParams struct {
	Repo      Repository
	Completer Completer
	Logger    *logger.Logger
}

type service struct {
	repo      Repository
	completer Completer
	logg      *logger.Logger
}

// NewService builds a chat service. The completer may be nil; the façade then
// always answers with the fallback.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:      params.Repo,
		completer: params.Completer,
		logg:      params.Logger,
	}, nil
}

func (s *service) Ask(ctx context.Context, sessionID, message string) (AskResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return AskResult{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return AskResult{}, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	result := AskResult{Response: fallbackResponse, Fallback: true}
	if s.completer != nil {
		response, err := s.completer.Complete(ctx, openai.CompletionRequest{
			Messages: []openai.Message{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: message},
			},
		})
		if err != nil {
			s.logg.Error(ctx, "chat completion failed", err)
		} else if strings.TrimSpace(response) != "" {
			result = AskResult{Response: strings.TrimSpace(response)}
		}
	}

	record := models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Message:   message,
		Response:  result.Response,
	}
	if err := s.repo.Append(ctx, &record); err != nil {
		// The visitor already has an answer; losing one log row is not worth
		// failing the request over.
		s.logg.Error(ctx, "append chat exchange failed", err)
	}

	return result, nil
}

func (s *service) History(ctx context.Context, sessionID string) ([]ExchangeDTO, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	messages, err := s.repo.History(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load chat history")
	}
	out := make([]ExchangeDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, ExchangeDTO{
			ID:        m.ID,
			Message:   m.Message,
			Response:  m.Response,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
