package szx

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/samcharles93/szx/pkg/logger"
	"github.com/samcharles93/szx/pkg/snap"
)

// session is the per-Decode state threaded through every block decoder.
type session struct {
	version    Version
	compressor Compressor
	log        logger.Logger

	// swapAF is set when the creator is known to have written A and F
	// (and A' and F') in the wrong order.
	swapAF  bool
	creator *Creator
}

// Decode parses a complete SZX image. Unknown blocks are skipped; any
// error in a known block aborts the whole decode.
func Decode(data []byte, opts Options) (*snap.Snap, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	log := opts.logger()
	if h.Version.Major() != 1 {
		log.Debug("unexpected major version", slog.String("version", h.Version.String()))
	}

	s := snap.New(h.Machine)
	s.LateTimings = h.LateTimings()

	ss := &session{
		version:    h.Version,
		compressor: opts.compressor(),
		log:        log,
	}

	off := headerSize
	for off < len(data) {
		t, payload, next, err := nextBlock(data, off)
		if err != nil {
			return nil, err
		}
		if err := ss.decodeBlock(s, t, payload); err != nil {
			return nil, blockErr(t, err)
		}
		off = next
	}
	if ss.creator != nil {
		log.Debug("decoded snapshot", slog.String("machine", s.Machine.String()), slog.String("creator", ss.creator.Program))
	}
	return s, nil
}

// nextBlock splits the block starting at off into its tag and payload.
func nextBlock(data []byte, off int) (t Tag, payload []byte, next int, err error) {
	if len(data)-off < blockHeaderSize {
		return t, nil, 0, fmt.Errorf("%w: truncated block header at offset %d", ErrCorrupt, off)
	}
	copy(t[:], data[off:off+4])
	length := binary.LittleEndian.Uint32(data[off+4 : off+8])
	start := off + blockHeaderSize
	if uint64(length) > uint64(len(data)-start) {
		return t, nil, 0, fmt.Errorf("%w: %s block length %d runs past end of file at offset %d", ErrCorrupt, t, length, off)
	}
	end := start + int(length)
	return t, data[start:end], end, nil
}

func (ss *session) decodeBlock(s *snap.Snap, t Tag, payload []byte) error {
	codec, ok := registry[t]
	if !ok {
		ss.log.Warn("skipping unknown block", slog.String("tag", fmt.Sprintf("%q", t[:])), slog.Int("length", len(payload)))
		return nil
	}
	if codec.decode == nil {
		ss.log.Debug("skipping unsupported block", slog.String("tag", t.String()), slog.Int("length", len(payload)))
		return nil
	}
	return codec.decode(ss, s, payload)
}

func wantLen(p []byte, n int) error {
	if len(p) != n {
		return invalidf("length %d, want %d", len(p), n)
	}
	return nil
}

func wantMinLen(p []byte, n int) error {
	if len(p) < n {
		return invalidf("length %d, want at least %d", len(p), n)
	}
	return nil
}
