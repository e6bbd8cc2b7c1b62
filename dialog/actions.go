package dialog

import (
	"strings"

	"github.com/s0up4200/movieclient/session"
)

// Action is an entry of the interactive menu
type Action int

const (
	ActionRegister Action = iota
	ActionLogin
	ActionLogout
	ActionList
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionSetURL
	ActionQuit
)

var actionNames = map[Action]string{
	ActionRegister: "register",
	ActionLogin:    "login",
	ActionLogout:   "logout",
	ActionList:     "list",
	ActionCreate:   "create",
	ActionUpdate:   "update",
	ActionDelete:   "delete",
	ActionSetURL:   "url",
	ActionQuit:     "quit",
}

// String returns the menu name of the action
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction looks up an action by its menu name
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for action, name := range actionNames {
		if name == s {
			return action, true
		}
	}
	return 0, false
}

// Actions returns the menu entries offered in the given session state.
// Account actions are shown without a token, movie actions with one.
func Actions(state session.State) []Action {
	if state == session.Authenticated {
		return []Action{
			ActionList,
			ActionCreate,
			ActionUpdate,
			ActionDelete,
			ActionLogout,
			ActionSetURL,
			ActionQuit,
		}
	}

	return []Action{
		ActionLogin,
		ActionRegister,
		ActionSetURL,
		ActionQuit,
	}
}
