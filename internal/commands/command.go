package commands

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeCategory Type = "category"
	TypePeriod   Type = "period"
	TypePrev     Type = "prev"
	TypeNext     Type = "next"
	TypeTimer    Type = "timer"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries a new task. "@Word" tokens select the category and a
// "due:2006-01-02" token sets the due date; everything else is title.
type AddArgs struct {
	Title    string
	Category string
	DueAt    *time.Time
}

type DoneArgs struct {
	Target string
}

type DeleteArgs struct {
	Target string
}

type CategoryAction string

const (
	CategoryAdd    CategoryAction = "add"
	CategoryRename CategoryAction = "rename"
	CategoryDelete CategoryAction = "delete"
)

type CategoryArgs struct {
	Action  CategoryAction
	Name    string
	NewName string
}

type PeriodArgs struct {
	Period string
}

type TimerAction string

const (
	TimerStart TimerAction = "start"
	TimerPause TimerAction = "pause"
	TimerReset TimerAction = "reset"
	TimerWork  TimerAction = "work"
	TimerShort TimerAction = "short"
	TimerLong  TimerAction = "long"
)

type TimerArgs struct {
	Action TimerAction
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *DoneArgs
	Delete   *DeleteArgs
	Category *CategoryArgs
	Period   *PeriodArgs
	Timer    *TimerArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseTarget(input, TypeDone, args)
	case TypeDelete:
		return parseTarget(input, TypeDelete, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypePeriod:
		return parsePeriod(input, args)
	case TypePrev:
		return Command{Type: TypePrev, Raw: input}, nil
	case TypeNext:
		return Command{Type: TypeNext, Raw: input}, nil
	case TypeTimer:
		return parseTimer(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	add := AddArgs{}
	titleWords := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "@") && len(arg) > 1:
			add.Category = strings.TrimPrefix(arg, "@")
		case strings.HasPrefix(strings.ToLower(arg), "due:"):
			due, err := time.ParseInLocation("2006-01-02", arg[len("due:"):], time.Local)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad due date: %s", arg)}
			}
			add.DueAt = &due
		default:
			titleWords = append(titleWords, arg)
		}
	}

	add.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task", typ)}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeDone {
		cmd.Done = &DoneArgs{Target: target}
	} else {
		cmd.Delete = &DeleteArgs{Target: target}
	}
	return cmd, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires an action and a name"}
	}
	action := CategoryAction(strings.ToLower(args[0]))
	rest := strings.TrimSpace(strings.Join(args[1:], " "))

	switch action {
	case CategoryAdd, CategoryDelete:
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: action, Name: rest}}, nil
	case CategoryRename:
		oldName, newName, ok := strings.Cut(rest, "->")
		oldName = strings.TrimSpace(oldName)
		newName = strings.TrimSpace(newName)
		if !ok || oldName == "" || newName == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires: category rename Old -> New"}
		}
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: action, Name: oldName, NewName: newName}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported category action: %s", args[0])}
	}
}

func parsePeriod(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "period requires week, month or year"}
	}
	period := strings.ToLower(args[0])
	switch period {
	case "week", "month", "year":
		return Command{Type: TypePeriod, Raw: raw, Period: &PeriodArgs{Period: period}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported period: %s", args[0])}
	}
}

func parseTimer(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "timer requires an action"}
	}
	action := TimerAction(strings.ToLower(args[0]))
	switch action {
	case TimerStart, TimerPause, TimerReset, TimerWork, TimerShort, TimerLong:
		return Command{Type: TypeTimer, Raw: raw, Timer: &TimerArgs{Action: action}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported timer action: %s", args[0])}
	}
}
