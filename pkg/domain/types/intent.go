package types

import "github.com/m-mizutani/goerr/v2"

// IntentCategory is the routing label the classifier assigns to a user
// message. The set is closed: a value outside it is a classification error,
// never a silent default.
type IntentCategory string

const (
	IntentKnowledge       IntentCategory = "knowledge"
	IntentCustomerService IntentCategory = "customer-service"
)

// AllIntentCategories returns all valid intent categories
func AllIntentCategories() []IntentCategory {
	return []IntentCategory{
		IntentKnowledge,
		IntentCustomerService,
	}
}

// IsValid checks if the intent category is valid
func (c IntentCategory) IsValid() bool {
	switch c {
	case IntentKnowledge,
		IntentCustomerService:
		return true
	default:
		return false
	}
}

// String returns the string representation of the intent category
func (c IntentCategory) String() string {
	return string(c)
}

// ParseIntentCategory parses a string into an IntentCategory
func ParseIntentCategory(s string) (IntentCategory, error) {
	category := IntentCategory(s)
	if !category.IsValid() {
		return "", goerr.New("invalid intent category", goerr.V("category", s))
	}
	return category, nil
}
