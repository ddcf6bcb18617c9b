package gen

import (
	"fmt"
	"io"

	"github.com/toejough/go-reorder"
)

// writeGeneratedCode reorders the declarations of code per project conventions and writes it to filename.
func writeGeneratedCode(code, filename string, fileSys FileSystem, out io.Writer) error {
	const generatedFilePermissions = 0o600

	reordered, err := reorder.Source(code)
	if err != nil {
		// If reordering fails, log but continue with original code
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileSys.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
