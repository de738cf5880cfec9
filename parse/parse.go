// Package parse reads declaration graphs into source files. The surface
// syntax itself is parsed elsewhere; this package accepts its JSON encoding.
package parse

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/garciat/roto/source"
)

type SyntaxError struct {
	Path string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

type Parser interface {
	ParseFile(path string) (*source.FileDef, error)
	ParseSource(path string, data []byte) (*source.FileDef, error)
}

func NewParser() Parser {
	return &parser{}
}

type parser struct{}

func (p *parser) ParseFile(path string) (*source.FileDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.ParseSource(path, data)
}

func (p *parser) ParseSource(path string, data []byte) (*source.FileDef, error) {
	text, err := Decode(data)
	if err != nil {
		return nil, &SyntaxError{Path: path, Msg: err.Error()}
	}
	return readFile(path, text)
}

// Decode converts input bytes to UTF-8. A UTF-8 or UTF-16 byte order mark
// selects the encoding and is dropped; without one the input is UTF-8.
func Decode(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	return text, err
}
