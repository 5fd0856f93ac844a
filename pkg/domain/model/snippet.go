package model

// ContextSnippet is a piece of retrieved text handed to a generator as
// grounding context. Read-only; produced by the retrieval service.
type ContextSnippet struct {
	Content string
	Source  string
}
