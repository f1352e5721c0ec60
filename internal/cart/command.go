package cart

import (
	"context"
	"fmt"
)

type Action int

const (
	ActionAdd Action = iota + 1
	ActionIncrement
	ActionDecrement
	ActionSetQuantity
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionIncrement:
		return "increment"
	case ActionDecrement:
		return "decrement"
	case ActionSetQuantity:
		return "set_quantity"
	case ActionRemove:
		return "remove"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Command is a single cart mutation requested by the terminal UI. Quantity is
// only read by ActionSetQuantity.
type Command struct {
	Action    Action
	ProductID string
	Quantity  int
}

func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Action {
	case ActionAdd:
		return s.AddItem(ctx, cmd.ProductID)
	case ActionIncrement:
		return s.Increment(cmd.ProductID)
	case ActionDecrement:
		return s.Decrement(cmd.ProductID)
	case ActionSetQuantity:
		return s.SetQuantity(cmd.ProductID, cmd.Quantity)
	case ActionRemove:
		return s.Remove(cmd.ProductID)
	default:
		return validation("unknown cart action " + cmd.Action.String())
	}
}
