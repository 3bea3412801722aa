package szx

import (
	"bytes"
	"log/slog"
)

// readMemory returns exactly expected bytes from p. Raw regions must already
// be that size; compressed ones must inflate to it. The result never aliases
// p, which may be a file mapping.
func (ss *session) readMemory(p []byte, compressed bool, expected int) ([]byte, error) {
	if compressed {
		return ss.compressor.Decompress(p, expected)
	}
	if len(p) != expected {
		return nil, invalidf("raw region is %d bytes, want %d", len(p), expected)
	}
	return bytes.Clone(p), nil
}

// readRAMPage decodes the common [flags u16][page u8][data] layout. The
// caller validates the page number against its own bank count.
func (ss *session) readRAMPage(p []byte, expected int) (page int, flags uint16, data []byte, err error) {
	if len(p) < 3 {
		return 0, 0, nil, invalidf("page block is %d bytes, need at least 3", len(p))
	}
	c := newCursor(p)
	flags = c.u16()
	page = int(c.u8())
	data, err = ss.readMemory(c.rest(), flags&ramCompressed != 0, expected)
	if err != nil {
		return 0, 0, nil, err
	}
	return page, flags, data, nil
}

// readPair decodes the RAM and ROM regions of a disk interface block. Both
// regions share a single compression flag.
func (ss *session) readPair(rest []byte, ramLen, romLen uint32, compressed, customROM bool, ramSize, romSize int) (ram, rom []byte, err error) {
	if customROM && romLen == 0 {
		return nil, nil, invalidf("custom ROM flagged but no ROM stored")
	}
	if !customROM && romLen != 0 {
		return nil, nil, invalidf("ROM of %d bytes stored without custom ROM flag", romLen)
	}
	if uint64(ramLen)+uint64(romLen) != uint64(len(rest)) {
		return nil, nil, invalidf("RAM %d + ROM %d bytes does not match remaining %d", ramLen, romLen, len(rest))
	}
	ram, err = ss.readMemory(rest[:ramLen], compressed, ramSize)
	if err != nil {
		return nil, nil, err
	}
	if customROM {
		rom, err = ss.readMemory(rest[ramLen:], compressed, romSize)
		if err != nil {
			return nil, nil, err
		}
	}
	return ram, rom, nil
}

// pack returns the bytes to store for data and whether they are compressed.
// A compressor failure is not fatal: the data is stored raw.
func (e *encoder) pack(data []byte) ([]byte, bool) {
	if data == nil || e.mode == CompressNone {
		return data, false
	}
	packed, err := e.compressor.Compress(data)
	if err != nil {
		e.log.Debug("storing region uncompressed", slog.Int("size", len(data)), slog.Any("error", err))
		return data, false
	}
	if e.mode == CompressAlways || len(packed) < len(data) {
		return packed, true
	}
	return data, false
}

// packPair compresses a RAM and ROM region together. The block has one flag
// for both, so unless every present region compresses both are stored raw.
func (e *encoder) packPair(ram, rom []byte) (pram, prom []byte, compressed bool) {
	pram, ramOK := e.pack(ram)
	compressed = ramOK
	prom = rom
	if rom != nil {
		var romOK bool
		prom, romOK = e.pack(rom)
		compressed = compressed && romOK
	}
	if !compressed {
		return ram, rom, false
	}
	return pram, prom, true
}

// writeRAMPage emits one [flags u16][page u8][data] block. A nil page is
// skipped.
func (e *encoder) writeRAMPage(t Tag, data []byte, size, page int, extra uint16) error {
	if data == nil {
		return nil
	}
	if len(data) != size {
		return logicf("%s page %d is %d bytes, want %d", t, page, len(data), size)
	}
	packed, compressed := e.pack(data)
	flags := extra
	if compressed {
		flags |= ramCompressed
	}
	e.blk.u16(flags)
	e.blk.u8(byte(page))
	e.blk.write(packed)
	return e.flush(t)
}
