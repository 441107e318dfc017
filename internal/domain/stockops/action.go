package stockops

import (
	"strings"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// ActionType is a backend workflow action code.
type ActionType string

// The fixed set of workflow actions.
const (
	ActionSubmit           ActionType = "SUBMIT"
	ActionDispatch         ActionType = "DISPATCH"
	ActionApprove          ActionType = "APPROVE"
	ActionReturn           ActionType = "RETURN"
	ActionReject           ActionType = "REJECT"
	ActionComplete         ActionType = "COMPLETE"
	ActionCancel           ActionType = "CANCEL"
	ActionQuantityReceived ActionType = "QUANTITY_RECEIVED"
)

// Action is the outbound command applied to an existing stock operation.
// Constructed fresh per user confirmation; stateless; sent once.
type Action struct {
	Name   ActionType
	UUID   string
	Reason string
}

// actionByConfirmation maps the lower-cased, trimmed confirmation title the
// UI can present to exactly one action code.
var actionByConfirmation = map[string]ActionType{
	"submit":            ActionSubmit,
	"dispatch":          ActionDispatch,
	"complete":          ActionComplete,
	"complete dispatch": ActionComplete,
	"cancel":            ActionCancel,
	"reject":            ActionReject,
	"return":            ActionReturn,
	"authorize":         ActionApprove,
	"approve":           ActionApprove,
	"dispatchapproval":  ActionDispatch,
}

// ActionForConfirmation resolves a confirmation title to an action code.
// Titles outside the table yield ok=false: the caller must treat that as a
// defined no-op, not an error to surface.
func ActionForConfirmation(title string) (ActionType, bool) {
	a, ok := actionByConfirmation[strings.ToLower(strings.TrimSpace(title))]
	return a, ok
}

// StatusForAction gives the operation status reached by an action.
func StatusForAction(a ActionType) string {
	switch a {
	case ActionSubmit:
		return entity.StatusSubmitted
	case ActionApprove:
		return entity.StatusApproved
	case ActionDispatch:
		return entity.StatusDispatched
	case ActionComplete, ActionQuantityReceived:
		return entity.StatusCompleted
	case ActionCancel:
		return entity.StatusCancelled
	case ActionReject:
		return entity.StatusRejected
	case ActionReturn:
		return entity.StatusReturned
	default:
		return ""
	}
}
