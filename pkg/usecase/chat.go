package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/agent"
	"github.com/hatchpay/concierge/pkg/domain/interfaces"
	"github.com/hatchpay/concierge/pkg/domain/model"
	"github.com/hatchpay/concierge/pkg/domain/types"
	"github.com/hatchpay/concierge/pkg/utils/errutil"
	"github.com/hatchpay/concierge/pkg/utils/logging"
)

// ChatResult is the outcome of one chat turn. Ticket is non-nil when the
// generator requested ticket creation; Reply then carries the confirmation
// string instead of a conversational answer.
type ChatResult struct {
	UserID types.UserID
	Reply  string
	Ticket *model.Ticket
}

// ChatUseCase runs one chat turn through classification, generation, ticket
// extraction, tone refinement, and persistence.
type ChatUseCase struct {
	repo       interfaces.Repository
	classifier *agent.Classifier
	agents     *agent.Set
	refiner    *agent.PersonalityAgent
	ticket     *TicketUseCase
}

func NewChatUseCase(repo interfaces.Repository, classifier *agent.Classifier, agents *agent.Set, refiner *agent.PersonalityAgent, ticket *TicketUseCase) *ChatUseCase {
	return &ChatUseCase{
		repo:       repo,
		classifier: classifier,
		agents:     agents,
		refiner:    refiner,
		ticket:     ticket,
	}
}

// HandleChatMessage processes one user message and returns the reply bound
// to the resolved user ID. Classification and generation failures abort the
// request with ErrRequestFailed and leave no conversation writes behind;
// history load, refinement, and persistence failures degrade.
func (uc *ChatUseCase) HandleChatMessage(ctx context.Context, userID types.UserID, input string) (*ChatResult, error) {
	logger := logging.From(ctx)

	// ResolveIdentity: only callers with an existing ID get history
	// continuity. A fresh ID starts with an empty conversation.
	var history []model.ChatMessage
	if strings.TrimSpace(userID.String()) != "" {
		loaded, err := uc.repo.ChatMemory().GetConversation(ctx, userID, 0)
		if err != nil {
			errutil.Log(ctx, err, "history load failed, continuing without context")
		} else {
			history = loaded
		}
	} else {
		userID = types.NewUserID()
		logger.Debug("minted new user ID", "userID", userID)
	}

	userMsg := model.UserMessage(input)

	category, err := uc.classifier.Classify(ctx, userMsg)
	if err != nil {
		return nil, goerr.Wrap(ErrRequestFailed, "classification failed", goerr.V("cause", err))
	}

	generator, err := uc.agents.ForCategory(category)
	if err != nil {
		return nil, goerr.Wrap(ErrRequestFailed, "no generator for category", goerr.V("cause", err))
	}

	raw, err := generator.Generate(ctx, append(history, userMsg))
	if err != nil {
		return nil, goerr.Wrap(ErrRequestFailed, "generation failed",
			goerr.V("cause", err),
			goerr.V("category", category))
	}

	result := &ChatResult{UserID: userID}

	if ticket := uc.ticket.HandleTicketAction(ctx, raw); ticket != nil {
		result.Ticket = ticket
		result.Reply = ticketConfirmation(ticket)
	} else {
		result.Reply = uc.refiner.Refine(ctx, input, raw)
	}

	uc.persistTurn(ctx, userID, userMsg, result.Reply)

	return result, nil
}

// ClearConversation removes the user's conversation history
func (uc *ChatUseCase) ClearConversation(ctx context.Context, userID types.UserID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if err := uc.repo.ChatMemory().Clear(ctx, userID); err != nil {
		return goerr.Wrap(err, "failed to clear conversation", goerr.V("userID", userID))
	}
	return nil
}

// persistTurn appends the user message and the final reply. Persistence is
// best-effort: the caller already has the reply, losing continuity is
// preferable to losing the response.
func (uc *ChatUseCase) persistTurn(ctx context.Context, userID types.UserID, userMsg model.ChatMessage, reply string) {
	if err := uc.repo.ChatMemory().Append(ctx, userID, userMsg); err != nil {
		errutil.Log(ctx, err, "failed to persist user message")
		return
	}
	if err := uc.repo.ChatMemory().Append(ctx, userID, model.AssistantMessage(reply)); err != nil {
		errutil.Log(ctx, err, "failed to persist assistant reply")
	}
}

func ticketConfirmation(ticket *model.Ticket) string {
	return fmt.Sprintf("Ticket created successfully with subject: %q at %s",
		ticket.Subject, ticket.CreatedAt.Local().Format("3:04:05 PM"))
}
