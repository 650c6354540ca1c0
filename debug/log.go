package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
)

// Enable starts debug logging to ~/.config/m8remote/debug.log
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	homeDir, _ := os.UserHomeDir()
	dir := filepath.Join(homeDir, ".config", "m8remote")

	// Ensure directory exists
	os.MkdirAll(dir, 0755)

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true

	write("debug", "=== Debug logging started ===")
	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	write(category, format, args...)
}

// Warn writes a message both to the debug log and to stderr. Used for
// conditions the user should see even without the log open (a failed
// release leaving keys stuck on the host, for example).
func Warn(category, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: %s: %s\n", category, fmt.Sprintf(format, args...))

	mu.Lock()
	defer mu.Unlock()
	write(category, "WARN "+format, args...)
}

// write appends one line. Caller must hold mu.
func write(category, format string, args ...any) {
	if !enabled || file == nil {
		return
	}

	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-10s %s\n", ts, category, fmt.Sprintf(format, args...))
	file.Sync() // flush immediately so we see logs even on crash
}
