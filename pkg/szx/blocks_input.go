package szx

import (
	"log/slog"

	"github.com/samcharles93/szx/pkg/snap"
)

const (
	joystickSize    = 6
	keyboardSizeOld = 4
	keyboardSize    = 5
	mouseSize       = 7
)

// zxjtTypes maps the on-disk joystick codes to joystick types. Codes absent
// from the table (Spectrum+, none, anything unrecognised) attach nothing.
var zxjtTypes = map[byte]snap.JoystickType{
	zxjtKempston:  snap.JoystickKempston,
	zxjtFuller:    snap.JoystickFuller,
	zxjtCursor:    snap.JoystickCursor,
	zxjtSinclair1: snap.JoystickSinclair1,
	zxjtSinclair2: snap.JoystickSinclair2,
	zxjtTimex1:    snap.JoystickTimex1,
	zxjtTimex2:    snap.JoystickTimex2,
}

var zxjtCodes = func() map[snap.JoystickType]byte {
	m := make(map[snap.JoystickType]byte, len(zxjtTypes))
	for code, t := range zxjtTypes {
		m[t] = code
	}
	return m
}()

func attachJoystick(s *snap.Snap, code byte, input snap.JoystickInput) {
	if t, ok := zxjtTypes[code]; ok {
		s.AddJoystick(t, input)
	}
}

// joystickCode picks the joystick driven by input. The first match wins;
// any further match is dropped and reported as minor loss.
func (e *encoder) joystickCode(s *snap.Snap, input snap.JoystickInput) byte {
	code := byte(zxjtNone)
	found := false
	for _, j := range s.Joysticks {
		if j.Inputs&input == 0 {
			continue
		}
		c, ok := zxjtCodes[j.Type]
		if !ok {
			continue
		}
		if found {
			e.lose(MinorInfoLoss, "joystick shares an input with another",
				slog.String("joystick", j.Type.String()),
				slog.Int("input", int(input)))
			continue
		}
		code, found = c, true
	}
	return code
}

func decodeJoystick(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, joystickSize); err != nil {
		return err
	}
	c := newCursor(p)
	joyFlags.decompose(s, c.u32())
	attachJoystick(s, c.u8(), snap.InputJoy1)
	attachJoystick(s, c.u8(), snap.InputJoy2)
	return c.err
}

func encodeJoystick(e *encoder, s *snap.Snap) error {
	e.blk.u32(joyFlags.compose(s))
	e.blk.u8(e.joystickCode(s, snap.InputJoy1))
	e.blk.u8(e.joystickCode(s, snap.InputJoy2))
	return e.flush(TagJoystick)
}

func decodeKeyboard(ss *session, s *snap.Snap, p []byte) error {
	want := keyboardSizeOld
	if ss.version >= Version101 {
		want = keyboardSize
	}
	if err := wantLen(p, want); err != nil {
		return err
	}
	c := newCursor(p)
	keybFlags.decompose(s, c.u32())
	if want == keyboardSize {
		attachJoystick(s, c.u8(), snap.InputKeyboard)
	}
	return c.err
}

func encodeKeyboard(e *encoder, s *snap.Snap) error {
	e.blk.u32(keybFlags.compose(s))
	code := e.joystickCode(s, snap.InputKeyboard)
	if e.version >= Version101 {
		e.blk.u8(code)
	} else if code != zxjtNone {
		e.lose(MinorInfoLoss, "keyboard joystick needs format 1.1",
			slog.String("version", e.version.String()))
	}
	return e.flush(TagKeyboard)
}

func decodeMouse(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, mouseSize); err != nil {
		return err
	}
	// The AMX PIO control registers that follow are not kept.
	if p[0] == mouseKempston {
		s.KempstonMouse = true
	}
	return nil
}

func encodeMouse(e *encoder, s *snap.Snap) error {
	if !s.KempstonMouse {
		return nil
	}
	e.blk.u8(mouseKempston)
	e.blk.zeros(mouseSize - 1)
	return e.flush(TagMouse)
}
