package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted saves source that failed gofmt as <name>.unformatted.go
// next to the intended output. Best effort.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, name), content, filePerm)
}
