package app

// LocalManager is the capability an application instance holds to talk back
// to the process table. There is no privilege separation: any instance may
// kill any other.
type LocalManager struct {
	pid     ProcessID
	manager *Manager
}

func newLocalManager(pid ProcessID, manager *Manager) *LocalManager {
	return &LocalManager{pid: pid, manager: manager}
}

// Open launches or routes to a program, see Manager.Open
func (l *LocalManager) Open(argument string) (ProcessID, error) {
	return l.manager.Open(argument)
}

// Kill terminates any process
func (l *LocalManager) Kill(pid ProcessID) {
	l.manager.Kill(pid)
}

// Quit terminates the owning process
func (l *LocalManager) Quit() {
	l.Kill(l.pid)
}

// ProcessID returns the id of the owning process
func (l *LocalManager) ProcessID() ProcessID {
	return l.pid
}
