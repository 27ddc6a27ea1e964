package state

import "fmt"

// ActionKind identifies what a user input asks the session to do.
type ActionKind int

const (
	ActionNoop ActionKind = iota
	ActionSelectTab
	ActionQuit
)

func (k ActionKind) String() string {
	switch k {
	case ActionNoop:
		return "noop"
	case ActionSelectTab:
		return "select-tab"
	case ActionQuit:
		return "quit"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is a decoded user input. Digit is only meaningful for
// ActionSelectTab.
type Action struct {
	Kind  ActionKind
	Digit int
}

// Noop returns an action that changes nothing but still causes a redraw.
func Noop() Action { return Action{Kind: ActionNoop} }

// Quit returns the action that ends the session.
func Quit() Action { return Action{Kind: ActionQuit} }

// SelectTab returns the action for digit key d.
func SelectTab(d int) Action { return Action{Kind: ActionSelectTab, Digit: d} }

func (a Action) String() string {
	if a.Kind == ActionSelectTab {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Digit)
	}
	return a.Kind.String()
}
