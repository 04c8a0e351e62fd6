package domain

import "strings"

type Command string

const (
	CommandStart       Command = "start"
	CommandStop        Command = "stop"
	CommandCharge      Command = "charge"
	CommandMaintenance Command = "maintenance"
)

func Commands() []Command {
	return []Command{CommandStart, CommandStop, CommandCharge, CommandMaintenance}
}

func ParseCommand(raw string) (Command, error) {
	command := Command(strings.ToLower(strings.TrimSpace(raw)))
	switch command {
	case CommandStart, CommandStop, CommandCharge, CommandMaintenance:
		return command, nil
	default:
		return "", NewError(KindInvalidCommand, "", "Unknown command: "+raw)
	}
}
