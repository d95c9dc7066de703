//go:build unix

package selector

import "golang.org/x/sys/unix"

// deviceID returns the identifier of the filesystem/mount holding path.
func deviceID(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Dev), nil
}
