package vfs

import (
	"path"
	"sort"
	"time"
)

// Kind tags the variant a Node holds
type Kind string

const (
	KindApplication Kind = "application"
	KindDirectory   Kind = "directory"
	KindTextFile    Kind = "textfile"
	KindImage       Kind = "image"
	KindHyperlink   Kind = "hyperlink"
	KindProgram     Kind = "program"
	KindUnknown     Kind = "unknown"
)

// Executable is the payload of application and program nodes
type Executable interface {
	ExecutableName() string
}

// Node is one entry of the tree. Fields are populated according to Kind:
// Content and Charset for text files, Source and MIMEType for images and
// unknown files,
// Target for hyperlinks and Executable for applications and programs.
type Node struct {
	Kind       Kind
	Name       string
	Content    string
	Charset    string
	Source     string
	MIMEType   string
	Target     *Node
	Executable Executable
	ModTime    time.Time

	parent   *Node
	children map[string]*Node
}

// Parent returns the containing directory, nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool {
	return n.Kind == KindDirectory
}

// Children returns the entries of a directory sorted by name
func (n *Node) Children() []*Node {
	if n.children == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Child returns the named entry of a directory
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// ConstructPath returns the absolute path of a node by walking its parents
func ConstructPath(n *Node) string {
	if n == nil {
		return ""
	}
	var parts []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.Name)
	}
	if len(parts) == 0 {
		return "/"
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + path.Join(parts...)
}

func newDirectory(name string) *Node {
	return &Node{
		Kind:     KindDirectory,
		Name:     name,
		ModTime:  time.Now(),
		children: make(map[string]*Node),
	}
}
