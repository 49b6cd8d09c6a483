package shell

import "github.com/GriffinCanCode/AgentOS/desktop/internal/shared/command"

// ParseCommand splits a command line into tokens, honouring quotes and
// backslash escapes. Unbalanced quotes are an error.
func ParseCommand(line string) ([]string, error) {
	return command.Parse(line)
}

// EncodeCommand joins tokens into a command line ParseCommand splits back
func EncodeCommand(parts ...string) string {
	return command.Encode(parts...)
}
