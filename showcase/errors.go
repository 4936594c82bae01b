package showcase

import (
	"github.com/code19m/errx"
)

// CodeAssertionFailed marks a broken post-condition of a demonstration.
const CodeAssertionFailed = "ASSERTION_FAILED"

// CallCounter is anything exposing how often it invoked its operation.
type CallCounter interface {
	CallsCount() int
	Limit() int
}

// CheckCallsCount verifies that a limiter invoked its operation exactly up to
// its limit.
func CheckCallsCount(c CallCounter) error {
	expected := max(c.Limit(), 0)
	if c.CallsCount() == expected {
		return nil
	}

	return errx.New("[showcase]: calls count assertion failed",
		errx.WithCode(CodeAssertionFailed),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"expected": expected,
			"actual":   c.CallsCount(),
		}),
	)
}
