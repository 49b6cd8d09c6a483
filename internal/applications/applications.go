// Package applications bundles the stock applications and installs them
// into a file system.
package applications

import (
	"fmt"
	"sort"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/about"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/contact"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/debug"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/finder"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/notes"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/preview"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/skills"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications/terminal"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
)

// All returns the stock application bundles
func All() []*app.Config {
	return []*app.Config{
		finder.Config,
		notes.Config,
		terminal.Config,
		preview.Config,
		about.Config,
		contact.Config,
		skills.Config,
		debug.Config,
	}
}

// Install adds every bundle as an application node
func Install(fs *vfs.FileSystem) error {
	for _, cfg := range All() {
		if _, err := fs.AddApplication(cfg.InstallPath(), cfg); err != nil {
			return fmt.Errorf("install %s: %w", cfg.AppName, err)
		}
	}
	return nil
}

// Pinned returns the bundles shown in the dock, lowest priority first.
// Bundles without a priority are not pinned.
func Pinned(configs []*app.Config) []*app.Config {
	pinned := make([]*app.Config, 0, len(configs))
	for _, cfg := range configs {
		if cfg.DockPriority != nil {
			pinned = append(pinned, cfg)
		}
	}

	sort.SliceStable(pinned, func(i, j int) bool {
		return *pinned[i].DockPriority < *pinned[j].DockPriority
	})
	return pinned
}
