package truth

import "fmt"

// ConsentRequiredError signals that a write was refused because the user
// has no active consent grant.
type ConsentRequiredError struct {
	UserID string
}

func (e ConsentRequiredError) Error() string {
	return fmt.Sprintf("user %s has no active consent grant", e.UserID)
}

// DuplicateSubmissionError signals that the same user already submitted an
// observation for the same provider inside the duplicate window. Nothing
// was persisted.
type DuplicateSubmissionError struct {
	UserID     string
	ProviderID string
}

func (e DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("duplicate submission by user %s for provider %s", e.UserID, e.ProviderID)
}

// ValidationError signals an unresolvable input, such as an empty provider
// name or city.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
