//go:build !unix

package nativemem

const mmapSupported = false

func mapPages(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapPages(data []byte) error {
	return nil
}
