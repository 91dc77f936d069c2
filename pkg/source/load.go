package source

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Load reads a table, choosing the loader by file extension. sheet only
// applies to workbooks.
func Load(path, sheet string) (*Table, error) {
	if err := errors.ValidateExtension(path, ".xlsx", ".xlsm", ".json"); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	default:
		return LoadXLSX(path, sheet)
	}
}
