//go:build !windows

package session

import (
	"fmt"
	"os"
	"syscall"
)

// Exposure reports why the session file may be readable by others: group or
// world permission bits, or extra hardlinks giving the file another name.
// A missing file has no exposure.
func (s *FileStore) Exposure() ([]string, error) {
	fi, err := os.Lstat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", s.path, err)
	}

	var warnings []string
	if perm := fi.Mode().Perm(); perm&0o077 != 0 {
		warnings = append(warnings, fmt.Sprintf("permissions %04o allow other users to read stored credentials", perm))
	}

	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return warnings, fmt.Errorf("cannot convert to syscall.Stat_t for %s", s.path)
	}
	if stat.Nlink > 1 {
		warnings = append(warnings, fmt.Sprintf("file has %d hardlinks", stat.Nlink))
	}

	return warnings, nil
}
