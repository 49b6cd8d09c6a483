package app

import (
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/command"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
	"go.uber.org/zap"
)

// ProcessID identifies an application instance. IDs are handed out in
// increasing order and never reused until Reset.
type ProcessID int

// NoProcess is returned alongside an error
const NoProcess ProcessID = -1

// Bundles that open files by kind
var (
	FinderPath  = paths.App("Finder.app")
	NotesPath   = paths.App("Notes.app")
	PreviewPath = paths.App("Preview.app")
)

// FileSystem resolves launch paths
type FileSystem interface {
	GetNode(path string) (*vfs.Node, error)
}

// ProcessInfo describes a running instance
type ProcessInfo struct {
	ID         ProcessID `json:"pid"`
	InstanceID string    `json:"instance_id"`
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	StartedAt  time.Time `json:"started_at"`
}

type processContext struct {
	path       string
	compositor Compositor
}

type process struct {
	application Application
	context     processContext
	id          ProcessID
	instance    id.InstanceID
	startedAt   time.Time
}

// Manager is the process table
type Manager struct {
	compositor WindowCompositor
	fs         FileSystem
	apis       *system.APIs

	counter   ProcessID
	processes map[ProcessID]*process // nil value marks a killed slot
	observers eventbus.Bus[Event]

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a process table and registers it with the compositor
func NewManager(compositor WindowCompositor, fs FileSystem, apis *system.APIs) *Manager {
	m := &Manager{
		compositor: compositor,
		fs:         fs,
		apis:       apis,
		processes:  make(map[ProcessID]*process),
		logger:     logging.NewNop(),
	}
	compositor.RegisterApplicationManager(m)
	return m
}

// WithLogger adds structured logging to the manager
func (m *Manager) WithLogger(logger *logging.Logger) *Manager {
	m.logger = logging.OrNop(logger).Named("manager")
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Subscribe registers a listener for update and focus events
func (m *Manager) Subscribe(listener eventbus.Listener[Event]) eventbus.Subscription {
	return m.observers.Subscribe(listener)
}

// Unsubscribe removes a listener; unknown ids are ignored
func (m *Manager) Unsubscribe(id eventbus.ListenerID) {
	m.observers.Unsubscribe(id)
}

// Focus announces that application's window was focused
func (m *Manager) Focus(application Application) {
	m.observers.Publish(FocusEvent(application))
}

// Open launches the program named by the first token of argument, passing
// the remaining tokens as arguments. A bundle that is already running
// receives the request instead of a second instance being created.
// Directories, text files and images open in Finder, Notes and Preview;
// hyperlinks open their target.
func (m *Manager) Open(argument string) (ProcessID, error) {
	path, args, err := command.Split(argument)
	if err != nil {
		m.recordOpen(monitoring.OpenNotFound)
		m.logger.Debug("Open failed", zap.String("argument", argument), zap.Error(err))
		return NoProcess, ErrFileNotFound
	}

	node, err := m.fs.GetNode(path)
	if err != nil {
		m.recordOpen(monitoring.OpenNotFound)
		m.logger.Debug("Open failed", zap.String("path", path), zap.Error(err))
		return NoProcess, ErrFileNotFound
	}

	return m.openNode(node, path, args)
}

func (m *Manager) openNode(node *vfs.Node, path, args string) (ProcessID, error) {
	switch node.Kind {
	case vfs.KindApplication:
		cfg, ok := node.Executable.(*Config)
		if !ok || cfg.Entrypoint == nil {
			return m.notImplemented(node, path)
		}
		return m.openApplication(cfg, path, args)
	case vfs.KindDirectory:
		return m.Open(command.Encode(FinderPath, path))
	case vfs.KindTextFile:
		return m.Open(command.Encode(NotesPath, path))
	case vfs.KindImage:
		return m.Open(command.Encode(PreviewPath, path))
	case vfs.KindHyperlink:
		if node.Target == nil {
			m.recordOpen(monitoring.OpenNotFound)
			return NoProcess, ErrFileNotFound
		}
		return m.openNode(node.Target, vfs.ConstructPath(node.Target), args)
	default:
		return m.notImplemented(node, path)
	}
}

func (m *Manager) notImplemented(node *vfs.Node, path string) (ProcessID, error) {
	m.recordOpen(monitoring.OpenNotImplemented)
	m.logger.Debug("Open unsupported", zap.String("path", path), zap.String("kind", string(node.Kind)))
	return NoProcess, ErrNotImplemented
}

func (m *Manager) openApplication(cfg *Config, path, args string) (ProcessID, error) {
	if existing := m.findByPath(path); existing != nil {
		m.recordOpen(monitoring.OpenRouted)
		existing.application.On(types.NewApplicationOpenEvent(false, args), nil)
		return existing.id, nil
	}

	pid := m.counter
	compositor := m.compositor.NewLocal()
	local := newLocalManager(pid, m)

	proc := &process{
		application: cfg.Entrypoint(compositor, local, m.apis),
		context:     processContext{path: path, compositor: compositor},
		id:          pid,
		instance:    id.NewInstanceID(),
		startedAt:   time.Now(),
	}
	m.processes[pid] = proc
	m.counter++

	m.recordOpen(monitoring.OpenSpawned)
	if m.metrics != nil {
		m.metrics.RecordSpawn(m.Running())
	}
	m.logger.ForProcess(int(pid), proc.instance.String(), path).Info("Application spawned", zap.String("args", args))

	proc.application.On(types.NewApplicationOpenEvent(true, args), nil)
	m.observers.Publish(UpdateEvent())

	return pid, nil
}

// Kill removes a process. The slot is cleared before the instance hears
// about it, so kills issued from its quit or close handlers are no-ops.
// Unknown and already killed ids are ignored.
func (m *Manager) Kill(pid ProcessID) {
	proc := m.processes[pid]
	if proc == nil {
		return
	}
	m.processes[pid] = nil

	proc.application.On(types.NewApplicationQuitEvent(), nil)
	proc.context.compositor.CloseAll()

	if m.metrics != nil {
		m.metrics.RecordKill(m.Running())
	}
	m.logger.ForProcess(int(pid), proc.instance.String(), proc.context.path).Info("Application killed")

	m.observers.Publish(UpdateEvent())
}

// Terminate asks a process to quit itself by delivering application-kill.
// It reports whether the process exists.
func (m *Manager) Terminate(pid ProcessID) bool {
	proc := m.processes[pid]
	if proc == nil {
		return false
	}
	proc.application.On(types.NewApplicationKillEvent(), nil)
	return true
}

// Reset kills every process, restarts id numbering and drops all
// subscribers
func (m *Manager) Reset() {
	for pid := ProcessID(0); pid < m.counter; pid++ {
		m.Kill(pid)
	}

	m.counter = 0
	m.processes = make(map[ProcessID]*process)
	m.observers.Clear()

	m.logger.Info("Process table reset")
}

// ListApplications returns the running instances in process id order
func (m *Manager) ListApplications() []Application {
	out := []Application{}
	m.each(func(p *process) {
		out = append(out, p.application)
	})
	return out
}

// ListProcesses returns a snapshot of the running processes in id order
func (m *Manager) ListProcesses() []ProcessInfo {
	out := []ProcessInfo{}
	m.each(func(p *process) {
		out = append(out, ProcessInfo{
			ID:         p.id,
			InstanceID: p.instance.String(),
			Path:       p.context.path,
			Name:       p.application.Config().DisplayName,
			StartedAt:  p.startedAt,
		})
	})
	return out
}

// Processes implements system.ProcessTable
func (m *Manager) Processes() []system.ProcessSummary {
	out := []system.ProcessSummary{}
	for _, p := range m.ListProcesses() {
		out = append(out, system.ProcessSummary{
			PID:       int(p.ID),
			Name:      p.Name,
			Path:      p.Path,
			StartedAt: p.StartedAt,
		})
	}
	return out
}

// Lookup returns the running instance with the given id
func (m *Manager) Lookup(pid ProcessID) (Application, bool) {
	proc := m.processes[pid]
	if proc == nil {
		return nil, false
	}
	return proc.application, true
}

// ProcessOf returns the id of a running instance
func (m *Manager) ProcessOf(application Application) (ProcessID, bool) {
	var (
		found ProcessID
		ok    bool
	)
	m.each(func(p *process) {
		if !ok && p.application == application {
			found, ok = p.id, true
		}
	})
	return found, ok
}

// Running returns the number of live processes
func (m *Manager) Running() int {
	n := 0
	m.each(func(*process) { n++ })
	return n
}

func (m *Manager) findByPath(path string) *process {
	var found *process
	m.each(func(p *process) {
		if found == nil && p.context.path == path {
			found = p
		}
	})
	return found
}

// each visits live processes in id order
func (m *Manager) each(fn func(*process)) {
	for pid := ProcessID(0); pid < m.counter; pid++ {
		if proc := m.processes[pid]; proc != nil {
			fn(proc)
		}
	}
}

func (m *Manager) recordOpen(result string) {
	if m.metrics != nil {
		m.metrics.RecordOpen(result)
	}
}
