package vfs

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

//go:embed defaults/home.yaml
var defaultManifest []byte

// Manifest formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Manifest declares nodes to seed into the tree
type Manifest struct {
	Directories []string     `yaml:"directories" toml:"directories"`
	Files       []FileEntry  `yaml:"files" toml:"files"`
	Images      []ImageEntry `yaml:"images" toml:"images"`
	Links       []LinkEntry  `yaml:"links" toml:"links"`
}

// FileEntry declares a text file
type FileEntry struct {
	Path    string `yaml:"path" toml:"path"`
	Content string `yaml:"content" toml:"content"`
}

// ImageEntry declares an image
type ImageEntry struct {
	Path   string `yaml:"path" toml:"path"`
	Source string `yaml:"source" toml:"source"`
}

// LinkEntry declares a hyperlink. Links are applied last so they can point
// at anything else in the manifest.
type LinkEntry struct {
	Path   string `yaml:"path" toml:"path"`
	Target string `yaml:"target" toml:"target"`
}

// DefaultManifest returns the built-in home directory layout
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifest, FormatYAML)
}

// FormatFromPath derives the manifest format from a file extension
func FormatFromPath(p string) (string, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedManifest, p)
	}
}

// ParseManifest decodes a manifest in the given format
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedManifest, format)
	}

	return &m, nil
}

// LoadManifest reads a manifest from the host and applies it
func (fs *FileSystem) LoadManifest(hostPath string) error {
	format, err := FormatFromPath(hostPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(hostPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	m, err := ParseManifest(data, format)
	if err != nil {
		return err
	}

	if err := fs.ApplyManifest(m); err != nil {
		return err
	}

	fs.logger.Info("Manifest loaded",
		zap.String("manifest", hostPath),
		zap.Int("directories", len(m.Directories)),
		zap.Int("files", len(m.Files)),
		zap.Int("images", len(m.Images)),
		zap.Int("links", len(m.Links)),
	)
	return nil
}

// ApplyManifest creates every node the manifest declares. Directories are
// created first, then files, images and finally links.
func (fs *FileSystem) ApplyManifest(m *Manifest) error {
	for _, dir := range m.Directories {
		if _, err := fs.AddDirectory(dir); err != nil {
			return fmt.Errorf("manifest directory %s: %w", dir, err)
		}
	}

	for _, f := range m.Files {
		if _, err := fs.AddTextFile(f.Path, f.Content); err != nil {
			return fmt.Errorf("manifest file %s: %w", f.Path, err)
		}
	}

	for _, img := range m.Images {
		if _, err := fs.AddImage(img.Path, img.Source); err != nil {
			return fmt.Errorf("manifest image %s: %w", img.Path, err)
		}
	}

	for _, link := range m.Links {
		if _, err := fs.AddHyperlink(link.Path, link.Target); err != nil {
			return fmt.Errorf("manifest link %s: %w", link.Path, err)
		}
	}

	return nil
}
