package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore appends snapshots to JSONL files with time-based rotation.
type FileStore struct {
	outputDir        string
	rotationInterval time.Duration

	mu            sync.Mutex
	currentFile   *os.File
	currentPath   string
	lastRotation  time.Time
	snapshotCount int64
}

// NewFileStore creates a new file store.
func NewFileStore(outputDir string, rotationInterval time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	s := &FileStore{
		outputDir:        outputDir,
		rotationInterval: rotationInterval,
	}

	if err := s.rotate(); err != nil {
		return nil, err
	}

	return s, nil
}

// WriteSnapshot appends a snapshot to the current file.
func (s *FileStore) WriteSnapshot(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rotationInterval > 0 && time.Since(s.lastRotation) > s.rotationInterval {
		if err := s.rotate(); err != nil {
			return err
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if _, err := s.currentFile.Write(data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if _, err := s.currentFile.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	s.snapshotCount++
	return nil
}

// Close closes the current file.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentFile != nil {
		return s.currentFile.Close()
	}
	return nil
}

// rotate creates a new output file.
func (s *FileStore) rotate() error {
	if s.currentFile != nil {
		s.currentFile.Close()
	}

	filename := fmt.Sprintf("portfolio_%s.jsonl", time.Now().UTC().Format("2006-01-02_15-04-05"))
	path := filepath.Join(s.outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	s.currentFile = f
	s.currentPath = path
	s.lastRotation = time.Now()
	s.snapshotCount = 0

	return nil
}

// CurrentPath returns the path to the current output file.
func (s *FileStore) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPath
}
