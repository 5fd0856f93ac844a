package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	ChatMemory() ChatMemoryRepository
	Ticket() TicketRepository
	Knowledge() KnowledgeRepository

	Close() error
}
