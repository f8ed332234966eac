package platform

import (
	"sync/atomic"

	"github.com/spaghettifunk/aurora/engine/core"
)

// DialogFunc blocks inside a native file dialog and returns the chosen
// path, or ok=false when the user cancelled.
type DialogFunc func() (path string, ok bool)

type dialogResult struct {
	path string
	ok   bool
}

// FileDialog runs a blocking native dialog on a background worker so the
// main loop keeps pumping. The native API exposes no cancellation, so on
// shutdown a still-open dialog is detached and leaks with the process.
type FileDialog struct {
	running atomic.Bool
	result  chan dialogResult
}

func NewFileDialog() *FileDialog {
	return &FileDialog{
		result: make(chan dialogResult, 1),
	}
}

// Open spawns the worker. Returns false if a dialog is already showing.
func (fd *FileDialog) Open(fn DialogFunc) bool {
	if !fd.running.CompareAndSwap(false, true) {
		core.LogWarn("file dialog already open")
		return false
	}
	go func() {
		path, ok := fn()
		fd.result <- dialogResult{path: path, ok: ok}
	}()
	return true
}

// Poll checks for a finished dialog without blocking. Call it once per
// loop iteration. done is true exactly once per Open.
func (fd *FileDialog) Poll() (path string, chosen, done bool) {
	select {
	case res := <-fd.result:
		fd.running.Store(false)
		return res.path, res.ok, true
	default:
		return "", false, false
	}
}

// Running reports whether a worker is still blocked in the native dialog.
func (fd *FileDialog) Running() bool {
	return fd.running.Load()
}

// Detach abandons a still-running worker. Used at shutdown.
func (fd *FileDialog) Detach() {
	if fd.running.Load() {
		core.LogWarn("file dialog still open at shutdown, detaching worker")
	}
}
