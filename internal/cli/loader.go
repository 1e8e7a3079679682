package cli

import (
	"errors"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/loader"
)

// CLI error codes. Document problems are reported with the loader's codes
// (E001-E007) and evaluation problems with the language error codes
// (UNDEFINED, NOT_EVALUABLE, ...).
const (
	ErrCodeGeneric     = "E_GENERIC"     // Unclassified error
	ErrCodeUsage       = "E_USAGE"       // Bad flag value
	ErrCodeNotFound    = "E_NOT_FOUND"   // Path not found
	ErrCodeWriteFailed = "E_WRITE"       // Output could not be written
	ErrCodeTestFailed  = "E_TEST_FAILED" // One or more scenarios failed
)

// documents is a loaded model and its optional properties.
type documents struct {
	Model      *ast.ModulesFile
	Properties *ast.PropertiesFile
}

// loadDocuments loads the model at modelPath and, if propsPath is set, the
// properties over it.
func loadDocuments(modelPath, propsPath string) (*documents, error) {
	mf, err := loader.LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	docs := &documents{Model: mf}
	if propsPath != "" {
		if docs.Properties, err = loader.LoadProperties(propsPath, mf); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// roots returns the loaded documents as traversal roots.
func (d *documents) roots() []ast.Node {
	roots := []ast.Node{d.Model}
	if d.Properties != nil {
		roots = append(roots, d.Properties)
	}
	return roots
}

// fail reports err through f and returns the exit error for it. Document
// problems are command errors; language errors are failures.
func fail(f *OutputFormatter, err error) error {
	var (
		le   *loader.LoadError
		lang *ast.LangError
	)
	switch {
	case errors.As(err, &le):
		_ = f.Error(le.Code, le.Message, positionDetails(le.Pos))
		return WrapExitError(ExitCommandError, le.Code, err)
	case errors.As(err, &lang):
		_ = f.Error(string(lang.Code), lang.Message, positionDetails(lang.Pos))
		return WrapExitError(ExitFailure, string(lang.Code), err)
	default:
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
	}
}

func positionDetails(pos ast.Position) any {
	if !pos.IsValid() {
		return nil
	}
	return map[string]any{"file": pos.File, "line": pos.Line, "column": pos.Column}
}
