package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/modelir/internal/ast"
)

// Format is the encoding of a model or properties document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", errorf(ErrCodeFormat, ast.Position{File: path}, "unknown document format %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
}

func decode(data []byte, format Format, file string) (*doc, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data, file)
	case FormatCUE:
		return decodeCUE(data, file)
	default:
		return nil, errorf(ErrCodeFormat, ast.Position{File: file}, "unknown document format %q", format)
	}
}

// ParseModel builds a model from document data. file is only used in
// positions and error messages.
func ParseModel(data []byte, format Format, file string) (*ast.ModulesFile, error) {
	root, err := decode(data, format, file)
	if err != nil {
		return nil, err
	}
	b := &builder{file: file, scope: newScope()}
	return b.buildModel(root)
}

// ParseProperties builds a properties file whose expressions are resolved
// against model. model may be nil for properties over constants only.
func ParseProperties(data []byte, format Format, file string, model *ast.ModulesFile) (*ast.PropertiesFile, error) {
	root, err := decode(data, format, file)
	if err != nil {
		return nil, err
	}
	s, err := modelScope(model)
	if err != nil {
		return nil, fmt.Errorf("model scope: %w", err)
	}
	b := &builder{file: file, scope: s}
	return b.buildProperties(root)
}

// LoadModel reads and builds the model at path.
func LoadModel(path string) (*ast.ModulesFile, error) {
	data, format, err := read(path)
	if err != nil {
		return nil, err
	}
	return ParseModel(data, format, path)
}

// LoadProperties reads and builds the properties at path.
func LoadProperties(path string, model *ast.ModulesFile) (*ast.PropertiesFile, error) {
	data, format, err := read(path)
	if err != nil {
		return nil, err
	}
	return ParseProperties(data, format, path, model)
}

func read(path string) ([]byte, Format, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errorf(ErrCodeRead, ast.Position{File: path}, "%v", err)
	}
	return data, format, nil
}
