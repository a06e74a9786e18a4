package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tracewell/tracewell/internal/util"
)

// DefaultExtensions is the log file allow-list used when the caller does
// not supply one.
var DefaultExtensions = []string{".log", ".txt", ".out"}

// ProgressEvent is an observational notification emitted while walking.
// It is not part of the correctness contract; consumers may ignore it.
type ProgressEvent struct {
	Path       string
	Discovered int
}

// FileScanner enumerates candidate log files under a root path. If the root
// is itself a file, Scan short-circuits to that single file regardless of
// the extension filter.
type FileScanner struct {
	root       string
	extensions []string
	recursive  bool
	events     chan ProgressEvent
}

// NewFileScanner creates a scanner for root. A nil or empty extensions
// slice falls back to DefaultExtensions.
func NewFileScanner(root string, extensions []string, recursive bool) *FileScanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &FileScanner{
		root:       root,
		extensions: extensions,
		recursive:  recursive,
		events:     make(chan ProgressEvent, 256),
	}
}

// Events returns the progress notification channel. Events are dropped
// rather than blocking the walk when no one is draining.
func (s *FileScanner) Events() <-chan ProgressEvent {
	return s.events
}

// Scan enumerates matching files in deterministic (sorted) order. A root
// path that does not exist is a terminal configuration error; unreadable
// entries below an existing root are skipped. Scan is one-shot: it closes
// the progress channel on return.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	defer close(s.events)

	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("log path %s: %w", s.root, err)
	}

	if !info.IsDir() {
		s.emit(s.root, 1)
		return []string{s.root}, nil
	}

	var files []string
	if s.recursive {
		err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				util.LogDebug(fmt.Sprintf("Skip entry (error): %s - %v", path, err))
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if s.matchExtension(path) {
				files = append(files, path)
				s.emit(path, len(files))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", s.root, err)
		}
	} else {
		entries, err := os.ReadDir(s.root)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", s.root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(s.root, entry.Name())
			if s.matchExtension(path) {
				files = append(files, path)
				s.emit(path, len(files))
			}
		}
	}

	sort.Strings(files)

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, found %d log files under %s",
		time.Since(start), len(files), s.root))

	return files, nil
}

func (s *FileScanner) matchExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range s.extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func (s *FileScanner) emit(path string, discovered int) {
	select {
	case s.events <- ProgressEvent{Path: path, Discovered: discovered}:
	default:
	}
}
