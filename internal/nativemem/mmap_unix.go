//go:build unix

package nativemem

import "golang.org/x/sys/unix"

const mmapSupported = true

func mapPages(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapPages(data []byte) error {
	return unix.Munmap(data)
}
