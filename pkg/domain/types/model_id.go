package types

// ModelID names the LLM model an agent calls. Which model backs which agent
// is configuration, not code; these are only the fallbacks.
type ModelID string

const (
	DefaultClassifierModel ModelID = "gpt-5-nano"
	DefaultGeneratorModel  ModelID = "gpt-5-nano"
	DefaultRefinerModel    ModelID = "gpt-5-nano"
)

// String returns the string representation of ModelID
func (m ModelID) String() string {
	return string(m)
}
