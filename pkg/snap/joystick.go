package snap

// JoystickType is the emulated joystick interface protocol.
type JoystickType int

const (
	JoystickNone JoystickType = iota
	JoystickCursor
	JoystickKempston
	JoystickSinclair1
	JoystickSinclair2
	JoystickTimex1
	JoystickTimex2
	JoystickFuller
)

func (t JoystickType) String() string {
	switch t {
	case JoystickCursor:
		return "cursor"
	case JoystickKempston:
		return "kempston"
	case JoystickSinclair1:
		return "sinclair1"
	case JoystickSinclair2:
		return "sinclair2"
	case JoystickTimex1:
		return "timex1"
	case JoystickTimex2:
		return "timex2"
	case JoystickFuller:
		return "fuller"
	default:
		return "none"
	}
}

// JoystickInput is a bitmask of the host devices driving a joystick.
type JoystickInput uint8

const (
	InputNone     JoystickInput = 0
	InputKeyboard JoystickInput = 1 << 0
	InputJoy1     JoystickInput = 1 << 1
	InputJoy2     JoystickInput = 1 << 2
)

// Joystick is one emulated joystick interface and the inputs mapped to it.
type Joystick struct {
	Type   JoystickType
	Inputs JoystickInput
}

// AddJoystick merges inputs into the existing entry for t, or appends a new
// entry when t is not yet present.
func (s *Snap) AddJoystick(t JoystickType, inputs JoystickInput) {
	for i := range s.Joysticks {
		if s.Joysticks[i].Type == t {
			s.Joysticks[i].Inputs |= inputs
			return
		}
	}
	s.Joysticks = append(s.Joysticks, Joystick{Type: t, Inputs: inputs})
}

// HasJoystick reports whether a joystick of type t is present.
func (s *Snap) HasJoystick(t JoystickType) bool {
	for _, j := range s.Joysticks {
		if j.Type == t {
			return true
		}
	}
	return false
}
