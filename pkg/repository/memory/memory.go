package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpay/concierge/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Memory is an in-memory Repository implementation for development and tests
type Memory struct {
	chatMemory *chatMemoryRepository
	ticket     *ticketRepository
	knowledge  *knowledgeRepository
}

var _ interfaces.Repository = &Memory{}

// Option is a functional option for Memory configuration
type Option func(*Memory)

// WithChatMemoryLimit overrides the conversation retention cap
func WithChatMemoryLimit(limit int) Option {
	return func(m *Memory) {
		m.chatMemory.limit = limit
	}
}

func New(opts ...Option) *Memory {
	m := &Memory{
		chatMemory: newChatMemoryRepository(),
		ticket:     newTicketRepository(),
		knowledge:  newKnowledgeRepository(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Memory) ChatMemory() interfaces.ChatMemoryRepository {
	return m.chatMemory
}

func (m *Memory) Ticket() interfaces.TicketRepository {
	return m.ticket
}

func (m *Memory) Knowledge() interfaces.KnowledgeRepository {
	return m.knowledge
}

func (m *Memory) Close() error {
	return nil
}
