package engine

import "fmt"

// Action is one of the five per-file operations. Exactly one is selected
// per run.
type Action string

const (
	ActionAdd    Action = "add"
	ActionCheck  Action = "check"
	ActionRemove Action = "remove"
	ActionUpdate Action = "update"
	ActionPrint  Action = "print"
)

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{ActionAdd, ActionCheck, ActionRemove, ActionUpdate, ActionPrint}
}

// ParseAction maps a name onto the closed action set.
func ParseAction(name string) (Action, error) {
	switch Action(name) {
	case ActionAdd, ActionCheck, ActionRemove, ActionUpdate, ActionPrint:
		return Action(name), nil
	default:
		return "", fmt.Errorf("unknown action: %s", name)
	}
}
