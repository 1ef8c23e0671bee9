//go:build unix

package sass

import "golang.org/x/sys/unix"

func canRead(path string) error {
	return unix.Access(path, unix.R_OK)
}

func canWrite(path string) error {
	return unix.Access(path, unix.W_OK)
}

func canCreateIn(dir string) error {
	return unix.Access(dir, unix.W_OK|unix.X_OK)
}
