package translate

import (
	"errors"
	"fmt"
)

// The two error kinds. Every error returned by this package wraps exactly
// one of them.
var (
	ErrStructural = errors.New("structural error")
	ErrSemantic   = errors.New("semantic error")
)

var (
	ErrUnsupported = fmt.Errorf("%w: unsupported instruction", ErrStructural)
	ErrArgCount    = fmt.Errorf("%w: wrong number of operands", ErrStructural)

	ErrOperand = fmt.Errorf("%w: invalid operand", ErrSemantic)
	ErrTarget  = fmt.Errorf("%w: invalid branch or jump target", ErrSemantic)
)

var errInvalidLabel = errors.New("invalid label")

type Kind int

const (
	KindNone Kind = iota
	KindStructural
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindSemantic:
		return "semantic"
	default:
		return "none"
	}
}

// KindOf classifies err. Errors that did not come from this package report
// KindNone.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrStructural):
		return KindStructural
	case errors.Is(err, ErrSemantic):
		return KindSemantic
	default:
		return KindNone
	}
}

func unsupported(mnemonic string) error {
	return fmt.Errorf("%q: %w", mnemonic, ErrUnsupported)
}

func argCount(mnemonic string, want, got int) error {
	return fmt.Errorf("%s expects %d operands, got %d: %w", mnemonic, want, got, ErrArgCount)
}

func badOperand(mnemonic, token string, err error) error {
	return fmt.Errorf("%s: operand %q: %w: %w", mnemonic, token, ErrOperand, err)
}

func badTarget(mnemonic, label string, format string, args ...any) error {
	return fmt.Errorf("%s: target %q %s: %w", mnemonic, label, fmt.Sprintf(format, args...), ErrTarget)
}
