package szx

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/samcharles93/szx/pkg/logger"
	"github.com/samcharles93/szx/pkg/snap"
)

// encoder accumulates the output image. blk stages the payload of the block
// being built; flush frames it once its length is known.
type encoder struct {
	out []byte
	blk buffer

	version    Version
	mode       Compression
	compressor Compressor
	creator    *Creator
	log        logger.Logger
	loss       LossFlags
}

// Encode serialises s. creator may be nil, in which case no CRTR block is
// written. The returned LossFlags report any state the format cannot hold.
func Encode(s *snap.Snap, creator *Creator, opts Options) ([]byte, LossFlags, error) {
	if s == nil {
		return nil, 0, logicf("nil snapshot")
	}
	v, err := opts.version()
	if err != nil {
		return nil, 0, err
	}

	e := &encoder{
		out:        make([]byte, 0, 64*1024),
		version:    v,
		mode:       opts.Compression,
		compressor: opts.compressor(),
		creator:    creator,
		log:        opts.logger(),
	}

	if s.USourceActive {
		e.lose(MajorInfoLoss, "uSource state is not stored")
	}
	if s.DiscipleActive {
		e.lose(MajorInfoLoss, "DISCiPLE state is not stored")
	}
	if s.Didaktik80Active {
		e.lose(MajorInfoLoss, "Didaktik 80 state is not stored")
	}

	e.out, err = appendHeader(e.out, v, s)
	if err != nil {
		return nil, 0, err
	}

	for _, t := range writeOrder {
		codec := registry[t]
		if codec.encode == nil {
			continue
		}
		if err := codec.encode(e, s); err != nil {
			return nil, 0, blockErr(t, err)
		}
	}
	return e.out, e.loss, nil
}

// flush frames the staged payload as a block of type t.
func (e *encoder) flush(t Tag) error {
	n := e.blk.len()
	if uint64(n) > math.MaxUint32 {
		return logicf("%s payload of %d bytes exceeds block limit", t, n)
	}
	e.out = append(e.out, t[:]...)
	e.out = binary.LittleEndian.AppendUint32(e.out, uint32(n))
	e.out = append(e.out, e.blk.b...)
	e.blk.reset()
	return nil
}

func (e *encoder) lose(f LossFlags, reason string, args ...any) {
	e.loss |= f
	e.log.Debug(reason, append(args, slog.Bool("major", f&MajorInfoLoss != 0))...)
}
