package desktop

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/applications"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/app"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/compositor"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/system"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/vfs"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Desktop is a booted desktop
type Desktop struct {
	FS         *vfs.FileSystem
	Compositor *compositor.Compositor
	APIs       *system.APIs
	Manager    *app.Manager
	MenuBar    *MenuBar
	Dock       *Dock
	Loop       *Loop

	cfg     config.DesktopConfig
	events  eventbus.Bus[app.Event]
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New boots a desktop: it installs the stock bundles and programs, seeds
// the home directory, applies the configured manifest and host mount, and
// wires the process table to the compositor. logger and metrics may be nil.
func New(ctx context.Context, cfg config.DesktopConfig, logger *logging.Logger, metrics *monitoring.Metrics) (*Desktop, error) {
	logger = logging.OrNop(logger)

	fs := vfs.NewStandard().WithLogger(logger)
	if err := applications.Install(fs); err != nil {
		return nil, fmt.Errorf("failed to install applications: %w", err)
	}
	if err := shell.Install(fs); err != nil {
		return nil, fmt.Errorf("failed to install programs: %w", err)
	}
	if err := seed(ctx, fs, cfg, logger); err != nil {
		return nil, err
	}

	windows := compositor.New().WithLogger(logger).WithMetrics(metrics)
	apis := system.NewAPIs(fs, system.NewSoundService(cfg.Sound), system.NewSystemService(cfg.Debug))
	manager := app.NewManager(windows, fs, apis).WithLogger(logger).WithMetrics(metrics)
	apis.Processes = manager

	d := &Desktop{
		FS:         fs,
		Compositor: windows,
		APIs:       apis,
		Manager:    manager,
		MenuBar:    NewMenuBar(manager),
		Dock:       NewDock(manager, fs),
		Loop:       NewLoop(cfg.LoopBuffer).WithLogger(logger).WithMetrics(metrics),
		cfg:        cfg,
		logger:     logger.Named("desktop"),
		metrics:    metrics,
	}
	d.forward()

	d.logger.Info("Desktop booted",
		zap.Bool("debug", cfg.Debug),
		zap.Bool("sound", cfg.Sound),
		zap.String("home", cfg.Home),
	)
	return d, nil
}

func seed(ctx context.Context, fs *vfs.FileSystem, cfg config.DesktopConfig, logger *logging.Logger) error {
	manifest, err := vfs.DefaultManifest()
	if err != nil {
		return fmt.Errorf("failed to parse default manifest: %w", err)
	}
	if err := fs.ApplyManifest(manifest); err != nil {
		return fmt.Errorf("failed to apply default manifest: %w", err)
	}

	if cfg.Home != "" {
		if _, err := fs.AddDirectory(cfg.Home); err != nil {
			return fmt.Errorf("failed to create home %s: %w", cfg.Home, err)
		}
	}

	if cfg.Manifest != "" {
		if err := fs.LoadManifest(cfg.Manifest); err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	if cfg.Mount != "" {
		stats, err := fs.Mount(ctx, cfg.Mount, cfg.MountTarget)
		if err != nil {
			return fmt.Errorf("failed to mount %s: %w", cfg.Mount, err)
		}
		logger.Info("Host directory mounted",
			zap.String("host", cfg.Mount),
			zap.String("target", cfg.MountTarget),
			zap.Int("directories", stats.Directories),
			zap.Int("text_files", stats.TextFiles),
			zap.Int("images", stats.Images),
		)
	}
	return nil
}

// Run drives the control loop until ctx is done or Stop is called
func (d *Desktop) Run(ctx context.Context) error {
	return d.Loop.Run(ctx)
}

// Stop ends Run
func (d *Desktop) Stop() {
	d.Loop.Stop()
}

// Do runs fn on the control loop
func (d *Desktop) Do(ctx context.Context, fn func() error) error {
	return d.Loop.Do(ctx, fn)
}

// Subscribe registers a listener for process table events. Unlike
// Manager.Subscribe the subscription survives Reset.
func (d *Desktop) Subscribe(listener eventbus.Listener[app.Event]) eventbus.Subscription {
	return d.events.Subscribe(listener)
}

// Reset kills every process and restarts process numbering
func (d *Desktop) Reset() {
	d.Manager.Reset()
	d.MenuBar.attach()
	d.forward()
	d.events.Publish(app.UpdateEvent())
	d.logger.Info("Desktop reset")
}

// Deliver hands an event raised by a window view to the application that
// owns the window
func (d *Desktop) Deliver(id types.WindowID, event types.ApplicationEvent) error {
	w, ok := d.Compositor.Get(id)
	if !ok || w.Application == nil {
		return fmt.Errorf("%w: %d", compositor.ErrWindowNotFound, id)
	}
	w.Application.On(event, &app.WindowContext{WindowID: id})
	return nil
}

// Shell starts an interactive session writing to out. It launches
// programs through the process table directly.
func (d *Desktop) Shell(out io.Writer) *shell.Shell {
	sh := shell.New(d.APIs, d.Manager, out)
	if d.cfg.Home != "" {
		sh = sh.WithHome(d.cfg.Home)
	}
	return sh
}

// Metrics returns the metrics collector, or nil
func (d *Desktop) Metrics() *monitoring.Metrics {
	return d.metrics
}

func (d *Desktop) forward() {
	d.Manager.Subscribe(d.events.Publish)
}
