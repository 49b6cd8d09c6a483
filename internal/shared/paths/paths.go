// Package paths provides the standard virtual file system layout.
package paths

import (
	"fmt"
	"path"
	"strings"
)

// Root of the virtual file system
const Root = "/"

// Top-level directories
const (
	Applications = "/Applications"
	Bin          = "/bin"
	Users        = "/Users"
	Volumes      = "/Volumes"
)

// User directories
const (
	Home      = "/Users/joey"
	Desktop   = "/Users/joey/Desktop"
	Documents = "/Users/joey/Documents"
	Pictures  = "/Users/joey/Pictures"
)

// BundleSuffix marks application bundles
const BundleSuffix = ".app"

// App returns the install path of an application bundle
func App(bundle string) string {
	return path.Join(Applications, bundle)
}

// Program returns the install path of a terminal program
func Program(name string) string {
	return path.Join(Bin, name)
}

// IsApplicationPath checks if p points at an installed bundle
func IsApplicationPath(p string) bool {
	return path.Dir(p) == Applications && strings.HasSuffix(p, BundleSuffix)
}

// IsWithin reports whether p equals dir or lies beneath it
func IsWithin(p, dir string) bool {
	if dir == Root {
		return strings.HasPrefix(p, Root)
	}
	return p == dir || strings.HasPrefix(p, dir+"/")
}

// StandardDirectories returns all standard directories that should exist
func StandardDirectories() []string {
	return []string{
		Applications,
		Bin,
		Users,
		Home,
		Desktop,
		Documents,
		Pictures,
		Volumes,
	}
}

// ValidateBundleName checks if a bundle name is valid for path construction
func ValidateBundleName(bundle string) error {
	if bundle == "" {
		return fmt.Errorf("bundle name cannot be empty")
	}
	if strings.Contains(bundle, "/") {
		return fmt.Errorf("bundle name cannot contain path separators")
	}
	if !strings.HasSuffix(bundle, BundleSuffix) {
		return fmt.Errorf("bundle name must end in %s", BundleSuffix)
	}
	return nil
}
