package szx

import (
	"errors"
	"fmt"
)

var (
	ErrSignature      = errors.New("szx: invalid signature")
	ErrUnknownMachine = errors.New("szx: unknown machine type")
	ErrCorrupt        = errors.New("szx: corrupt file")
	ErrInvalidBlock   = errors.New("szx: invalid block")
	ErrUnsupported    = errors.New("szx: unsupported")
	ErrLogic          = errors.New("szx: invalid snapshot state")
)

// BlockError reports a failure while decoding or encoding a single block.
type BlockError struct {
	Tag Tag
	Err error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s block: %v", e.Tag, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

func blockErr(t Tag, err error) error {
	if err == nil {
		return nil
	}
	var be *BlockError
	if errors.As(err, &be) {
		return err
	}
	return &BlockError{Tag: t, Err: err}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidBlock}, args...)...)
}

func logicf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrLogic}, args...)...)
}
