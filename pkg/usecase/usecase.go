package usecase

import (
	"github.com/hatchpay/concierge/pkg/agent"
	"github.com/hatchpay/concierge/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository

	Chat   *ChatUseCase
	Ticket *TicketUseCase
}

type Option func(*UseCases)

func New(repo interfaces.Repository, classifier *agent.Classifier, agents *agent.Set, refiner *agent.PersonalityAgent, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Ticket = NewTicketUseCase(repo)
	uc.Chat = NewChatUseCase(repo, classifier, agents, refiner, uc.Ticket)

	return uc
}
