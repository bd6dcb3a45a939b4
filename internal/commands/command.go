// Package commands parses and dispatches palette input.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeSub   Type = "sub"
	TypeDone  Type = "done"
	TypeFocus Type = "focus"
	TypeShow  Type = "show"
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

type AddArgs struct {
	Title string
}

// SubArgs appends a subtask to the selected task.
type SubArgs struct {
	Text string
}

type DoneArgs struct {
	Target string // task id, or "selected"
}

type FocusArgs struct {
	Minutes int
}

type ShowArgs struct {
	Subject string
	Phase   string
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Sub   *SubArgs
	Done  *DoneArgs
	Focus *FocusArgs
	Show  *ShowArgs
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
	case TypeSub:
		return parseSub(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseSub(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sub requires subtask text"}
	}
	return Command{Type: TypeSub, Raw: raw, Sub: &SubArgs{Text: text}}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	target := "selected"
	if len(args) > 0 {
		target = strings.ToLower(args[0])
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: target}}, nil
}

func parseFocus(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "focus requires minutes"}
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid focus minutes: %s", args[0])}
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Minutes: minutes}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	phase := ""
	for _, arg := range args[1:] {
		if strings.HasPrefix(strings.ToLower(arg), "phase:") {
			phase = strings.TrimSpace(strings.TrimPrefix(arg, "phase:"))
		}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject, Phase: phase}}, nil
}
