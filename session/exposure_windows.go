//go:build windows

package session

// Exposure reports why the session file may be readable by others.
// Windows ACLs are not inspected, so nothing is reported.
func (s *FileStore) Exposure() ([]string, error) {
	return nil, nil
}
