package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add   func(AddArgs) (Result, error)
	Sub   func(SubArgs) (Result, error)
	Done  func(DoneArgs) (Result, error)
	Focus func(FocusArgs) (Result, error)
	Show  func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeSub:
		if handlers.Sub == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "sub handler not configured"}
		}
		return handlers.Sub(*cmd.Sub)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeFocus:
		if handlers.Focus == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "focus handler not configured"}
		}
		return handlers.Focus(*cmd.Focus)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
