package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrBadFormat = errors.New("bad format")
	ErrParse     = errors.New("parse error")
)

// Format selects the document syntax.
type Format int

const (
	YAMLFormat Format = iota
	// JSONFormat is the JSON form of ir.Node, which keeps tags.
	JSONFormat
)

var formatNames = map[string]Format{
	"yaml": YAMLFormat,
	"yml":  YAMLFormat,
	"json": JSONFormat,
}

// ParseFormat returns the format called v ("yaml", "yml" or "json").
func ParseFormat(v string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(v)]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FormatOf picks the format of a file from its extension, defaulting to
// YAML.
func FormatOf(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return YAMLFormat
	}
	return f
}

func (f Format) String() string {
	switch f {
	case YAMLFormat:
		return "yaml"
	case JSONFormat:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

type parseOpts struct {
	format Format
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption { return WithFormat(YAMLFormat) }
func ParseJSON() ParseOption { return WithFormat(JSONFormat) }

// WithFormat selects the input format; YAML is the default.
func WithFormat(f Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

type encodeOpts struct {
	format Format
	indent int
}

type EncodeOption func(*encodeOpts)

func EncodeFormat(f Format) EncodeOption {
	return func(o *encodeOpts) { o.format = f }
}

// Indent sets the indentation width; the default is 2.
func Indent(n int) EncodeOption {
	return func(o *encodeOpts) { o.indent = n }
}
