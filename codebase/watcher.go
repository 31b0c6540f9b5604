package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the codebase root and rescans files whose modification
// time moved forward. onChange, if set, sees every rescanned file; removed
// files are reported with a nil *FileInfo.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, info *FileInfo)
}

func NewFileWatcher(c *Codebase, pollInterval time.Duration, onChange func(path string, info *FileInfo)) *FileWatcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSource(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			if err := w.codebase.ScanFile(path); err != nil {
				log.Warningf("rescanning %s: %s", path, err)
				return nil
			}
			w.notify(path, w.codebase.GetFile(path))
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.notify(path, nil)
		}
	}
}

func (w *FileWatcher) notify(path string, info *FileInfo) {
	if w.onChange != nil {
		w.onChange(path, info)
	}
}
