//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// linuxCommLength is the length the Linux kernel truncates process names to.
const linuxCommLength = 15

// ErrAlreadyRunning is returned when another process with the same executable is alive.
var ErrAlreadyRunning = errors.New("another instance is already running")

// ExecutableName returns the base name of the running binary without extension.
func ExecutableName() string {
	name := filepath.Base(os.Args[0])

	return strings.TrimSuffix(name, filepath.Ext(name))
}

// EnsureSingleInstance fails with ErrAlreadyRunning if a process other than
// this one runs an executable called name. GPIO lines cannot be shared.
func EnsureSingleInstance(name string) error {
	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if !sameExecutable(process.Executable(), name) {
			continue
		}

		return fmt.Errorf("%w: %s (pid %d)", ErrAlreadyRunning, name, process.Pid())
	}

	return nil
}

// sameExecutable compares a process table entry with name, tolerating the
// ".exe" suffix on Windows and the comm truncation on Linux.
func sameExecutable(executable, name string) bool {
	executable = strings.TrimSuffix(executable, ".exe")

	if executable == "" || name == "" {
		return false
	}

	if executable == name {
		return true
	}

	return runtime.GOOS == "linux" &&
		len(executable) == linuxCommLength &&
		strings.HasPrefix(name, executable)
}
