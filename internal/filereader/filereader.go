package filereader

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
)

// ErrInvalidUTF8 is returned when the content is not valid UTF-8. Text with a
// UTF-16 byte order mark fails the same way.
var ErrInvalidUTF8 = encoding.ErrInvalidUTF8

// newUTF8Reader validates r as strict UTF-8 and strips a leading UTF-8 byte
// order mark. Validation runs on the raw bytes, before the BOM decoder would
// replace ill-formed sequences.
func newUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()))
}

// ReadText reads the whole file at filePath and returns it as a string.
// The file is closed before ReadText returns, on every path.
func ReadText(fsys filesystem.Filesystem, filePath string) (string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := io.ReadAll(newUTF8Reader(file))
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return string(content), nil
}
