package vfs

import (
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/paths"
	"github.com/bmatcuk/doublestar/v4"
)

// ChangeOp describes a tree mutation
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpRemove ChangeOp = "remove"
)

// ChangeEvent is published after every mutation
type ChangeEvent struct {
	Op   ChangeOp
	Path string
	Kind Kind
}

// FileSystem is the node tree
type FileSystem struct {
	mu      sync.RWMutex
	root    *Node // Protected by mu
	changes eventbus.Bus[ChangeEvent]
	logger  *logging.Logger
}

// New creates a file system holding only the root directory
func New() *FileSystem {
	return &FileSystem{
		root:   newDirectory(""),
		logger: logging.NewNop(),
	}
}

// NewStandard creates a file system with the standard directory layout
func NewStandard() *FileSystem {
	fs := New()
	for _, dir := range paths.StandardDirectories() {
		// Fresh tree; directories cannot collide
		_, _ = fs.AddDirectory(dir)
	}
	return fs
}

// WithLogger sets the logger used for mount and manifest diagnostics
func (fs *FileSystem) WithLogger(logger *logging.Logger) *FileSystem {
	fs.logger = logging.OrNop(logger).Named("vfs")
	return fs
}

// Root returns the root directory
func (fs *FileSystem) Root() *Node {
	return fs.root
}

// GetNode returns the node at an absolute path
func (fs *FileSystem) GetNode(p string) (*Node, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node := fs.lookup(clean)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	return node, nil
}

// GetDirectory returns the directory at an absolute path
func (fs *FileSystem) GetDirectory(p string) (*Node, error) {
	node, err := fs.GetNode(p)
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, ConstructPath(node))
	}
	return node, nil
}

// Exists reports whether a node exists at p
func (fs *FileSystem) Exists(p string) bool {
	_, err := fs.GetNode(p)
	return err == nil
}

// List returns the entries of a directory sorted by name
func (fs *FileSystem) List(p string) ([]*Node, error) {
	dir, err := fs.GetDirectory(p)
	if err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return dir.Children(), nil
}

// AddDirectory creates a directory and any missing parents. An existing
// directory is returned unchanged.
func (fs *FileSystem) AddDirectory(p string) (*Node, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	dir, created, err := fs.mkdirAll(clean)
	events := changeEvents(OpCreate, created...)
	fs.mu.Unlock()
	if err != nil {
		return nil, err
	}

	fs.emit(events)
	return dir, nil
}

// AddTextFile creates a text file
func (fs *FileSystem) AddTextFile(p, content string) (*Node, error) {
	return fs.add(p, &Node{Kind: KindTextFile, Content: content, Charset: "UTF-8", MIMEType: "text/plain"})
}

// AddImage creates an image whose pixels live at source
func (fs *FileSystem) AddImage(p, source string) (*Node, error) {
	return fs.add(p, &Node{Kind: KindImage, Source: source})
}

// AddApplication installs an application bundle
func (fs *FileSystem) AddApplication(p string, exe Executable) (*Node, error) {
	return fs.add(p, &Node{Kind: KindApplication, Executable: exe})
}

// AddProgram installs a terminal program
func (fs *FileSystem) AddProgram(p string, exe Executable) (*Node, error) {
	return fs.add(p, &Node{Kind: KindProgram, Executable: exe})
}

// AddHyperlink creates a link to the node currently at target
func (fs *FileSystem) AddHyperlink(p, target string) (*Node, error) {
	targetNode, err := fs.GetNode(target)
	if err != nil {
		return nil, fmt.Errorf("hyperlink target: %w", err)
	}
	return fs.add(p, &Node{Kind: KindHyperlink, Target: targetNode})
}

// AddNode inserts a prepared node, used for kinds without a dedicated helper
func (fs *FileSystem) AddNode(p string, node *Node) (*Node, error) {
	if node == nil || node.Kind == KindDirectory {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return fs.add(p, node)
}

// WriteFile creates or replaces the content of a text file
func (fs *FileSystem) WriteFile(p, content string) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	node := fs.lookup(clean)
	if node != nil {
		if node.Kind != KindTextFile {
			fs.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrNotTextFile, clean)
		}
		node.Content = content
		node.ModTime = time.Now()
		events := changeEvents(OpUpdate, node)
		fs.mu.Unlock()

		fs.emit(events)
		return nil
	}
	fs.mu.Unlock()

	_, err = fs.AddTextFile(clean, content)
	return err
}

// ReadFile returns the content of a text file
func (fs *FileSystem) ReadFile(p string) (string, error) {
	node, err := fs.GetNode(p)
	if err != nil {
		return "", err
	}
	if node.Kind != KindTextFile {
		return "", fmt.Errorf("%w: %s", ErrNotTextFile, ConstructPath(node))
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return node.Content, nil
}

// Remove deletes a node and everything beneath it
func (fs *FileSystem) Remove(p string) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}
	if clean == paths.Root {
		return fmt.Errorf("%w: cannot remove root", ErrInvalidPath)
	}

	fs.mu.Lock()
	node := fs.lookup(clean)
	if node == nil {
		fs.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	delete(node.parent.children, node.Name)
	node.parent.ModTime = time.Now()
	fs.mu.Unlock()

	fs.changes.Publish(ChangeEvent{Op: OpRemove, Path: clean, Kind: node.Kind})
	return nil
}

// Walk visits every node beneath root in depth-first name order. Returning
// an error from fn stops the walk.
func (fs *FileSystem) Walk(root string, fn func(p string, n *Node) error) error {
	start, err := fs.GetNode(root)
	if err != nil {
		return err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return walk(ConstructPath(start), start, fn)
}

// Glob returns the paths of every node matching a doublestar pattern, in
// walk order. Relative patterns are matched against paths without the
// leading slash.
func (fs *FileSystem) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %s", doublestar.ErrBadPattern, pattern)
	}

	relative := !strings.HasPrefix(pattern, "/")
	matches := []string{}

	err := fs.Walk(paths.Root, func(p string, _ *Node) error {
		candidate := p
		if relative {
			candidate = strings.TrimPrefix(p, "/")
		}
		if candidate == "" {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, candidate); ok {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Subscribe registers a listener for change events
func (fs *FileSystem) Subscribe(listener eventbus.Listener[ChangeEvent]) eventbus.Subscription {
	return fs.changes.Subscribe(listener)
}

// Unsubscribe removes a change listener
func (fs *FileSystem) Unsubscribe(id eventbus.ListenerID) {
	fs.changes.Unsubscribe(id)
}

func (fs *FileSystem) add(p string, node *Node) (*Node, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	if clean == paths.Root {
		return nil, fmt.Errorf("%w: %s", ErrExists, clean)
	}

	dirPath, name := path.Split(clean)

	fs.mu.Lock()
	parent, created, err := fs.mkdirAll(path.Clean(dirPath))
	if err != nil {
		// Parents created before the conflict still exist
		events := changeEvents(OpCreate, created...)
		fs.mu.Unlock()
		fs.emit(events)
		return nil, err
	}
	if _, exists := parent.children[name]; exists {
		events := changeEvents(OpCreate, created...)
		fs.mu.Unlock()
		fs.emit(events)
		return nil, fmt.Errorf("%w: %s", ErrExists, clean)
	}

	node.Name = name
	node.parent = parent
	if node.ModTime.IsZero() {
		node.ModTime = time.Now()
	}
	parent.children[name] = node
	parent.ModTime = node.ModTime
	events := changeEvents(OpCreate, append(created, node)...)
	fs.mu.Unlock()

	fs.emit(events)
	return node, nil
}

// mkdirAll must be called with mu held. It returns the directory at p and
// the directories it had to create, outermost first.
func (fs *FileSystem) mkdirAll(p string) (*Node, []*Node, error) {
	cur := fs.root
	var created []*Node

	for _, part := range splitPath(p) {
		next, ok := cur.children[part]
		if !ok {
			next = newDirectory(part)
			next.parent = cur
			cur.children[part] = next
			created = append(created, next)
		} else if !next.IsDir() {
			return nil, created, fmt.Errorf("%w: %s", ErrNotDirectory, ConstructPath(next))
		}
		cur = next
	}
	return cur, created, nil
}

// lookup must be called with mu held
func (fs *FileSystem) lookup(p string) *Node {
	cur := fs.root
	for _, part := range splitPath(p) {
		next, ok := cur.children[part]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func (fs *FileSystem) emit(events []ChangeEvent) {
	for _, event := range events {
		fs.changes.Publish(event)
	}
}

// changeEvents must be called with mu held
func changeEvents(op ChangeOp, nodes ...*Node) []ChangeEvent {
	events := make([]ChangeEvent, len(nodes))
	for i, n := range nodes {
		events[i] = ChangeEvent{Op: op, Path: ConstructPath(n), Kind: n.Kind}
	}
	return events
}

func walk(p string, n *Node, fn func(string, *Node) error) error {
	if err := fn(p, n); err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err := walk(path.Join(p, child.Name), child, fn); err != nil {
			return err
		}
	}
	return nil
}

func cleanPath(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, p)
	}
	return path.Clean(p), nil
}

func splitPath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
