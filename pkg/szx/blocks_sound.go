package szx

import "github.com/samcharles93/szx/pkg/snap"

const (
	aySize       = 2 + snap.AYRegisters
	specdrumSize = 1
	covoxSize    = 4
)

func decodeAY(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, aySize); err != nil {
		return err
	}
	c := newCursor(p)
	ayFlags.decompose(s, uint32(c.u8()))
	s.AY.RegisterPort = c.u8()
	copy(s.AY.Registers[:], c.bytes(snap.AYRegisters))
	return c.err
}

func encodeAY(e *encoder, s *snap.Snap) error {
	if !s.AY.FullerBox && !s.AY.Melodik && !s.Machine.Capabilities().Has(snap.CapAY) {
		return nil
	}
	e.blk.u8(byte(ayFlags.compose(s)))
	e.blk.u8(s.AY.RegisterPort)
	e.blk.write(s.AY.Registers[:])
	return e.flush(TagAY)
}

// The SpecDrum DAC is signed in the snapshot and stored with a +128 bias.

func decodeSpecdrum(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, specdrumSize); err != nil {
		return err
	}
	s.Specdrum.DAC = int8(p[0] - 128)
	s.Specdrum.Active = true
	return nil
}

func encodeSpecdrum(e *encoder, s *snap.Snap) error {
	if !s.Specdrum.Active {
		return nil
	}
	e.blk.u8(byte(s.Specdrum.DAC) + 128)
	return e.flush(TagSpecdrum)
}

func decodeCovox(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, covoxSize); err != nil {
		return err
	}
	s.Covox.DAC = p[0]
	s.Covox.Active = true
	return nil
}

func encodeCovox(e *encoder, s *snap.Snap) error {
	if !s.Covox.Active {
		return nil
	}
	e.blk.u8(s.Covox.DAC)
	e.blk.zeros(covoxSize - 1)
	return e.flush(TagCovox)
}
