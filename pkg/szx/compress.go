package szx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compressor is the deflate primitive used for compressed memory regions.
type Compressor interface {
	// Compress returns the zlib stream for src.
	Compress(src []byte) ([]byte, error)
	// Decompress inflates src. It fails unless the output is exactly
	// expected bytes long.
	Decompress(src []byte, expected int) ([]byte, error)
}

// ZlibCompressor is the default Compressor.
type ZlibCompressor struct{}

func (ZlibCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (ZlibCompressor) Decompress(src []byte, expected int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrInvalidBlock, err)
	}
	defer func() { _ = zr.Close() }()

	// One extra byte is enough to tell an oversized stream apart.
	out, err := io.ReadAll(io.LimitReader(zr, int64(expected)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrInvalidBlock, err)
	}
	if len(out) != expected {
		return nil, fmt.Errorf("%w: inflated %d bytes, want %d", ErrInvalidBlock, len(out), expected)
	}
	return out, nil
}

// NoCompressor is a Compressor for builds without deflate support. Reading
// a compressed region fails with ErrUnsupported; writing stores data raw.
type NoCompressor struct{}

func (NoCompressor) Compress([]byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: compression not available", ErrUnsupported)
}

func (NoCompressor) Decompress([]byte, int) ([]byte, error) {
	return nil, fmt.Errorf("%w: decompression not available", ErrUnsupported)
}
