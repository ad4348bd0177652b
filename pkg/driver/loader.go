package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"sortle/interpreter-go/pkg/ast"
	"sortle/interpreter-go/pkg/parser"
)

// LoadProgram reads a Sortle source file and parses it into the expression
// set the rewrite engine starts from. Unlike the multi-package module
// resolution a general-purpose language needs, a Sortle program is always
// exactly one file: there are no imports, so nothing outside that file is
// read.
func LoadProgram(path string) ([]ast.Expression, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", abs, err)
	}
	exprs, err := parser.ParseProgram(string(source))
	if err != nil {
		return nil, err
	}
	return exprs, nil
}
