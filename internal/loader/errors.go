package loader

import (
	"fmt"

	"github.com/roach88/modelir/internal/ast"
)

// Error codes reported by the loader.
const (
	ErrCodeRead      = "E001" // Document could not be read
	ErrCodeFormat    = "E002" // Unknown document format
	ErrCodeSyntax    = "E003" // YAML or CUE syntax error
	ErrCodeSchema    = "E004" // Unexpected document shape or unknown key
	ErrCodeUndefined = "E005" // Reference to an undeclared name
	ErrCodeDuplicate = "E006" // Name declared twice
	ErrCodeType      = "E007" // Ill-typed expression or declaration
)

// LoadError is a problem with a model or properties document.
type LoadError struct {
	Code    string
	Message string
	Pos     ast.Position // Zero value if unknown
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errorf(code string, pos ast.Position, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}
