package shell

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
)

// Program runs with the parsed command line; args[0] is the program name
type Program func(sh *Shell, args []string, apis *system.APIs)

// ProgramConfig is the executable payload of a /bin node
type ProgramConfig struct {
	AppName string
	Usage   string
	Program Program
}

// ExecutableName returns the program name
func (c *ProgramConfig) ExecutableName() string {
	return c.AppName
}

var (
	cdConfig      = &ProgramConfig{AppName: "cd", Usage: "cd [dir]", Program: changeDirectory}
	pwdConfig     = &ProgramConfig{AppName: "pwd", Usage: "pwd", Program: printWorkingDirectory}
	motdConfig    = &ProgramConfig{AppName: "motd", Usage: "motd", Program: messageOfTheDay}
	lsConfig      = &ProgramConfig{AppName: "ls", Usage: "ls [path]", Program: list}
	catConfig     = &ProgramConfig{AppName: "cat", Usage: "cat file...", Program: concatenate}
	openConfig    = &ProgramConfig{AppName: "open", Usage: "open path [args...]", Program: open}
	psConfig      = &ProgramConfig{AppName: "ps", Usage: "ps", Program: processStatus}
	killConfig    = &ProgramConfig{AppName: "kill", Usage: "kill pid...", Program: kill}
	findConfig    = &ProgramConfig{AppName: "find", Usage: "find pattern", Program: find}
	helpConfig    = &ProgramConfig{AppName: "help", Usage: "help", Program: help}
	echoConfig    = &ProgramConfig{AppName: "echo", Usage: "echo [text...]", Program: echo}
	historyConfig = &ProgramConfig{AppName: "history", Usage: "history", Program: history}
)

// Programs returns every built-in program
func Programs() []*ProgramConfig {
	return []*ProgramConfig{
		cdConfig,
		pwdConfig,
		motdConfig,
		lsConfig,
		catConfig,
		openConfig,
		psConfig,
		killConfig,
		findConfig,
		helpConfig,
		echoConfig,
		historyConfig,
	}
}

// Install adds every built-in program under /bin
func Install(fs *vfs.FileSystem) error {
	for _, cfg := range Programs() {
		if _, err := fs.AddProgram(paths.Program(cfg.AppName), cfg); err != nil {
			return fmt.Errorf("install %s: %w", cfg.AppName, err)
		}
	}
	return nil
}

func changeDirectory(sh *Shell, args []string, apis *system.APIs) {
	target := sh.Home()
	if len(args) > 1 {
		target = args[1]
	}

	absolute := sh.ResolvePath(target)
	if _, err := apis.FileSystem.GetDirectory(absolute); err != nil {
		sh.WriteResponse(fmt.Sprintf("cd: no such file or directory: %s", target))
		return
	}
	sh.ChangeDirectory(absolute)
}

func printWorkingDirectory(sh *Shell, _ []string, _ *system.APIs) {
	sh.WriteResponse(sh.Path())
}

func messageOfTheDay(sh *Shell, _ []string, _ *system.APIs) {
	sh.WriteResponseLines([]string{
		"J-OS Generic alpha build, (C)1998 Joeysoft, bv.",
		"Authorized use only.",
		"All activity is monitored and may be reported.",
		"",
	})
}

func list(sh *Shell, args []string, apis *system.APIs) {
	target := "."
	if len(args) > 1 {
		target = args[1]
	}

	node, err := apis.FileSystem.GetNode(sh.ResolvePath(target))
	if err != nil {
		sh.WriteResponse(fmt.Sprintf("ls: no such file or directory: %s", target))
		return
	}
	if !node.IsDir() {
		sh.WriteResponse(node.Name)
		return
	}

	children, err := apis.FileSystem.List(vfs.ConstructPath(node))
	if err != nil {
		sh.WriteResponse(fmt.Sprintf("ls: %s: %v", target, err))
		return
	}
	for _, child := range children {
		name := child.Name
		if child.IsDir() {
			name += "/"
		}
		sh.WriteResponse(name)
	}
}

func concatenate(sh *Shell, args []string, apis *system.APIs) {
	if len(args) < 2 {
		sh.WriteResponse("usage: cat file...")
		return
	}

	for _, target := range args[1:] {
		content, err := apis.FileSystem.ReadFile(sh.ResolvePath(target))
		switch {
		case errors.Is(err, vfs.ErrNotFound):
			sh.WriteResponse(fmt.Sprintf("cat: %s: No such file or directory", target))
		case errors.Is(err, vfs.ErrNotTextFile):
			sh.WriteResponse(fmt.Sprintf("cat: %s: Not a text file", target))
		case err != nil:
			sh.WriteResponse(fmt.Sprintf("cat: %s: %v", target, err))
		default:
			sh.WriteResponseLines(strings.Split(strings.TrimSuffix(content, "\n"), "\n"))
		}
	}
}

func open(sh *Shell, args []string, _ *system.APIs) {
	if len(args) < 2 {
		sh.WriteResponse("usage: open path [args...]")
		return
	}

	parts := append([]string{sh.ResolvePath(args[1])}, args[2:]...)
	if _, err := sh.Launcher().Open(EncodeCommand(parts...)); err != nil {
		sh.WriteResponse(err.Error())
	}
}

func processStatus(sh *Shell, _ []string, apis *system.APIs) {
	if apis.Processes == nil {
		sh.WriteResponse("ps: process table unavailable")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PID\tNAME\tPATH")
	for _, p := range apis.Processes.Processes() {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.PID, p.Name, p.Path)
	}
	w.Flush()

	sh.WriteResponseLines(strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n"))
}

func kill(sh *Shell, args []string, _ *system.APIs) {
	if len(args) < 2 {
		sh.WriteResponse("usage: kill pid...")
		return
	}

	for _, arg := range args[1:] {
		pid, err := strconv.Atoi(arg)
		if err != nil || pid < 0 {
			sh.WriteResponse(fmt.Sprintf("kill: illegal process id: %s", arg))
			continue
		}
		sh.Launcher().Kill(app.ProcessID(pid))
	}
}

func find(sh *Shell, args []string, apis *system.APIs) {
	if len(args) < 2 {
		sh.WriteResponse("usage: find pattern")
		return
	}

	pattern := args[1]
	if !strings.HasPrefix(pattern, "/") {
		pattern = path.Join(sh.Path(), pattern)
	}

	matches, err := apis.FileSystem.Glob(pattern)
	if err != nil {
		sh.WriteResponse(fmt.Sprintf("find: %v", err))
		return
	}
	sh.WriteResponseLines(matches)
}

func help(sh *Shell, _ []string, apis *system.APIs) {
	nodes, err := apis.FileSystem.List(paths.Bin)
	if err != nil {
		sh.WriteResponse(fmt.Sprintf("help: %v", err))
		return
	}

	for _, node := range nodes {
		if cfg, ok := node.Executable.(*ProgramConfig); ok {
			sh.WriteResponse(cfg.Usage)
		}
	}
}

func echo(sh *Shell, args []string, _ *system.APIs) {
	sh.WriteResponse(strings.Join(args[1:], " "))
}

func history(sh *Shell, _ []string, _ *system.APIs) {
	for i, line := range sh.History() {
		sh.WriteResponse(fmt.Sprintf("%5d  %s", i+1, line))
	}
}
