package system

import (
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
)

// APIs bundles the system services passed to application entrypoints
type APIs struct {
	FileSystem *vfs.FileSystem
	Sound      *SoundService
	System     *SystemService
	Processes  ProcessTable // nil until a process table is attached
}

// ProcessSummary is one row of the process listing
type ProcessSummary struct {
	PID       int       `json:"pid"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	StartedAt time.Time `json:"started_at"`
}

// ProcessTable is the read-only view of running processes exposed to
// programs
type ProcessTable interface {
	Processes() []ProcessSummary
}

// NewAPIs creates the service bundle
func NewAPIs(fs *vfs.FileSystem, sound *SoundService, system *SystemService) *APIs {
	return &APIs{
		FileSystem: fs,
		Sound:      sound,
		System:     system,
	}
}

// SystemService exposes build flags
type SystemService struct {
	debug bool
}

// NewSystemService creates a system service
func NewSystemService(debug bool) *SystemService {
	return &SystemService{debug: debug}
}

// IsDebug reports whether debug tooling is enabled
func (s *SystemService) IsDebug() bool {
	return s.debug
}
