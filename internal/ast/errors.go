package ast

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes language errors.
type ErrorCode string

const (
	// CodeInvalidNode indicates a malformed node (missing child, bad operator).
	CodeInvalidNode ErrorCode = "INVALID_NODE"

	// CodeUndefined indicates a reference to an unknown name.
	CodeUndefined ErrorCode = "UNDEFINED"

	// CodeTypeMismatch indicates an operand of the wrong type.
	CodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// CodeNotEvaluable indicates an expression that cannot be evaluated in a
	// single state (temporal and probabilistic operators, filters, ...).
	CodeNotEvaluable ErrorCode = "NOT_EVALUABLE"

	// CodeArithmetic indicates an arithmetic fault such as integer division
	// by zero or a negative integer exponent.
	CodeArithmetic ErrorCode = "ARITHMETIC"

	// CodeCopyFailed indicates a copy produced a node of the wrong kind.
	CodeCopyFailed ErrorCode = "COPY_FAILED"
)

// LangError is the single error kind raised by traversal, copy and
// evaluation when a node is malformed, ill-typed or otherwise invalid.
type LangError struct {
	Code    ErrorCode
	Message string
	Pos     Position // Optional; zero value if unknown
}

// Error implements the error interface.
func (e *LangError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Pos, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Errorf creates a LangError with a formatted message.
func Errorf(code ErrorCode, pos Position, format string, args ...any) *LangError {
	return &LangError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// IsLangError reports whether err is, or wraps, a LangError.
func IsLangError(err error) bool {
	var le *LangError
	return errors.As(err, &le)
}

// ErrorCodeOf returns the code of the LangError wrapped by err, or "" if err
// does not wrap one.
func ErrorCodeOf(err error) ErrorCode {
	var le *LangError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
