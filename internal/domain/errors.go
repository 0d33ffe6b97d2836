package domain

import "fmt"

// ValidationError means a guard failed: a required field is missing or a
// selection is empty. The request is left untouched.
type ValidationError struct {
	Action string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid %s: %s", e.Action, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Action, e.Reason)
}

// AuthorizationError means the actor's role or relationship to the request
// does not permit the action.
type AuthorizationError struct {
	Action  string
	Status  Status
	ActorID string
	Reason  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: actor %s not permitted at status %s: %s", e.Action, e.ActorID, e.Status, e.Reason)
}

// InvalidTransitionError means the action is not defined for the current
// state at all, usually because the request has moved on.
type InvalidTransitionError struct {
	Action string
	Status Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: not allowed at status %s", e.Action, e.Status)
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
