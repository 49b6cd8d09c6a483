package vfs

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
)

// MaxMountFileSize is the largest host file whose content is imported
const MaxMountFileSize = 1 << 20

// MountStats counts the nodes a mount created
type MountStats struct {
	Directories int `json:"directories"`
	TextFiles   int `json:"text_files"`
	Images      int `json:"images"`
	Other       int `json:"other"`
	Skipped     int `json:"skipped"`
}

type mountEntry struct {
	path string
	node *Node
}

// Mount imports the host directory hostDir beneath target. Text files are
// copied in with their detected charset, images reference their host path
// and everything else becomes an unknown node carrying its MIME type.
func (fs *FileSystem) Mount(ctx context.Context, hostDir, target string) (MountStats, error) {
	var stats MountStats

	if _, err := cleanPath(target); err != nil {
		return stats, err
	}

	root, err := filepath.Abs(hostDir)
	if err != nil {
		return stats, fmt.Errorf("mount %s: %w", hostDir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return stats, fmt.Errorf("mount %s: %w", hostDir, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("mount %s: %w", hostDir, ErrNotDirectory)
	}

	// fastwalk calls back from several goroutines; collect first and apply
	// in path order so change events stay ordered.
	var (
		mu      sync.Mutex
		entries []mountEntry
		skipped int
	)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			mu.Lock()
			skipped++
			mu.Unlock()
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		vfsPath := path.Join(target, filepath.ToSlash(rel))

		node, ok := classify(p, d)

		mu.Lock()
		defer mu.Unlock()
		if !ok {
			skipped++
			return nil
		}
		entries = append(entries, mountEntry{path: vfsPath, node: node})
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("mount %s: %w", hostDir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	if _, err := fs.AddDirectory(target); err != nil {
		return stats, err
	}

	stats.Skipped = skipped
	for _, e := range entries {
		if e.node.Kind == KindDirectory {
			if _, err := fs.AddDirectory(e.path); err != nil {
				stats.Skipped++
				continue
			}
			stats.Directories++
			continue
		}

		if _, err := fs.add(e.path, e.node); err != nil {
			fs.logger.Debug("Mount entry skipped", zap.String("path", e.path), zap.Error(err))
			stats.Skipped++
			continue
		}

		switch e.node.Kind {
		case KindTextFile:
			stats.TextFiles++
		case KindImage:
			stats.Images++
		default:
			stats.Other++
		}
	}

	fs.logger.Info("Host directory mounted",
		zap.String("host", root),
		zap.String("target", target),
		zap.Int("directories", stats.Directories),
		zap.Int("text_files", stats.TextFiles),
		zap.Int("images", stats.Images),
		zap.Int("other", stats.Other),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// classify turns a host entry into an unattached node
func classify(hostPath string, d os.DirEntry) (*Node, bool) {
	if d.IsDir() {
		return &Node{Kind: KindDirectory}, true
	}
	if !d.Type().IsRegular() {
		return nil, false
	}

	info, err := d.Info()
	if err != nil {
		return nil, false
	}

	mtype, err := mimetype.DetectFile(hostPath)
	if err != nil {
		return nil, false
	}

	node := &Node{MIMEType: mtype.String(), Source: hostPath, ModTime: info.ModTime()}

	switch {
	case isText(mtype):
		if info.Size() > MaxMountFileSize {
			node.Kind = KindUnknown
			return node, true
		}
		data, err := os.ReadFile(hostPath)
		if err != nil {
			return nil, false
		}
		node.Kind = KindTextFile
		node.Content = string(data)
		node.Charset = DetectCharset(data)
	case strings.HasPrefix(mtype.String(), "image/"):
		node.Kind = KindImage
	default:
		node.Kind = KindUnknown
	}

	return node, true
}

func isText(mtype *mimetype.MIME) bool {
	return strings.HasPrefix(mtype.String(), "text/") ||
		mtype.Is("application/json") ||
		mtype.Is("application/xml") ||
		mtype.Is("application/javascript")
}

// DetectCharset returns the most likely charset of data, UTF-8 when unsure
func DetectCharset(data []byte) string {
	if len(data) == 0 {
		return "UTF-8"
	}
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "UTF-8"
	}
	return result.Charset
}
