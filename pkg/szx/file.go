package szx

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/szx/pkg/snap"
)

// ReadFile decodes the snapshot at path. The file is mapped read-only where
// mmap is available and read into memory otherwise. The mapping is released
// before ReadFile returns; decoded buffers never alias it.
func ReadFile(path string, opts Options) (*snap.Snap, error) {
	data, release, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	defer release()
	return Decode(data, opts)
}

// InspectFile is Inspect for a file on disk.
func InspectFile(path string) (*Manifest, error) {
	data, release, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	defer release()
	return Inspect(data)
}

// ReadFrom decodes a snapshot of the given size from a random-access reader.
func ReadFrom(r io.ReaderAt, size int64, opts Options) (*snap.Snap, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: size %d", ErrCorrupt, size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}

func loadFile(path string) (data []byte, release func(), err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, nil, fmt.Errorf("%w: %s is too large to map", ErrCorrupt, path)
	}
	size := int(size64)
	if size < headerSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes", ErrCorrupt, path, size)
	}

	data, err = unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return data, func() { _ = unix.Munmap(data) }, nil
	}

	// Fallback for filesystems without mmap support.
	data, err = readAllAt(f, size)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		if err == io.EOF {
			return nil, fmt.Errorf("%w: short read at offset %d", ErrCorrupt, off)
		}
		return nil, err
	}
	return out, nil
}

// WriteFile encodes s and writes it to path, replacing any existing file.
func WriteFile(path string, s *snap.Snap, creator *Creator, opts Options) (LossFlags, error) {
	data, loss, err := Encode(s, creator, opts)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := writeFull(f, data); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return 0, err
	}
	return loss, f.Close()
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
