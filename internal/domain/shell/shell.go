package shell

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
)

// Launcher opens and kills processes on behalf of the shell. Both
// *app.Manager and *app.LocalManager satisfy it.
type Launcher interface {
	Open(argument string) (app.ProcessID, error)
	Kill(pid app.ProcessID)
}

// Shell is one interactive session
type Shell struct {
	cwd      string
	home     string
	history  []string
	out      io.Writer
	apis     *system.APIs
	launcher Launcher
}

// New creates a shell in the home directory writing to out
func New(apis *system.APIs, launcher Launcher, out io.Writer) *Shell {
	return &Shell{
		cwd:      paths.Home,
		home:     paths.Home,
		out:      out,
		apis:     apis,
		launcher: launcher,
	}
}

// WithHome changes the home directory and moves the shell there
func (s *Shell) WithHome(home string) *Shell {
	s.home = path.Clean(home)
	s.cwd = s.home
	return s
}

// Path returns the working directory
func (s *Shell) Path() string {
	return s.cwd
}

// Home returns the home directory
func (s *Shell) Home() string {
	return s.home
}

// History returns the executed command lines, oldest first
func (s *Shell) History() []string {
	return append([]string(nil), s.history...)
}

// Launcher returns the process launcher of the session
func (s *Shell) Launcher() Launcher {
	return s.launcher
}

// APIs returns the system services of the session
func (s *Shell) APIs() *system.APIs {
	return s.apis
}

// ChangeDirectory sets the working directory without validation
func (s *Shell) ChangeDirectory(p string) {
	s.cwd = path.Clean(p)
}

// Prompt renders the prompt for the next command
func (s *Shell) Prompt() string {
	shown := s.cwd
	if paths.IsWithin(shown, s.home) {
		shown = "~" + strings.TrimPrefix(shown, s.home)
	}
	return fmt.Sprintf("joey@j-os %s %% ", shown)
}

// ResolvePath makes p absolute against the working directory. A leading ~
// refers to the home directory.
func (s *Shell) ResolvePath(p string) string {
	switch {
	case p == "" || p == ".":
		return s.cwd
	case p == "~":
		return s.home
	case strings.HasPrefix(p, "~/"):
		return path.Join(s.home, p[2:])
	case strings.HasPrefix(p, "/"):
		return path.Clean(p)
	default:
		return path.Join(s.cwd, p)
	}
}

// WriteResponse prints one line
func (s *Shell) WriteResponse(line string) {
	fmt.Fprintln(s.out, line)
}

// WriteResponseLines prints several lines
func (s *Shell) WriteResponseLines(lines []string) {
	for _, line := range lines {
		s.WriteResponse(line)
	}
}

// Execute runs one command line. Blank lines are ignored and not recorded.
func (s *Shell) Execute(line string) {
	tokens, err := ParseCommand(line)
	if err != nil {
		s.history = append(s.history, line)
		s.WriteResponse(fmt.Sprintf("shell: %v", err))
		return
	}
	if len(tokens) == 0 {
		return
	}
	s.history = append(s.history, line)

	cfg, ok := s.lookup(tokens[0])
	if !ok {
		s.WriteResponse(fmt.Sprintf("%s: command not found", tokens[0]))
		return
	}
	cfg.Program(s, tokens, s.apis)
}

// lookup resolves a program name against /bin, or as a path when it
// contains a slash
func (s *Shell) lookup(name string) (*ProgramConfig, bool) {
	if s.apis == nil || s.apis.FileSystem == nil {
		return nil, false
	}

	target := paths.Program(name)
	if strings.Contains(name, "/") {
		target = s.ResolvePath(name)
	}

	node, err := s.apis.FileSystem.GetNode(target)
	if err != nil || node.Kind != vfs.KindProgram {
		return nil, false
	}
	cfg, ok := node.Executable.(*ProgramConfig)
	return cfg, ok && cfg.Program != nil
}
