package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(DoneArgs) (Result, error)
	Delete   func(DeleteArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Period   func(PeriodArgs) (Result, error)
	Prev     func() (Result, error)
	Next     func() (Result, error)
	Timer    func(TimerArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "category handler not configured"}
		}
		return handlers.Category(*cmd.Category)
	case TypePeriod:
		if handlers.Period == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "period handler not configured"}
		}
		return handlers.Period(*cmd.Period)
	case TypePrev:
		if handlers.Prev == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "prev handler not configured"}
		}
		return handlers.Prev()
	case TypeNext:
		if handlers.Next == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "next handler not configured"}
		}
		return handlers.Next()
	case TypeTimer:
		if handlers.Timer == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "timer handler not configured"}
		}
		return handlers.Timer(*cmd.Timer)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
