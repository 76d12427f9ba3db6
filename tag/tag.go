// Package tag implements type identifiers: strings naming a
// (namespace, kind, version) triple, such as
// "tag:stsci.edu:asdf/transform/shift-1.0.0".
package tag

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadTag = errors.New("bad tag")

// Parts is the decomposition of an identifier. Namespace and Version may be
// empty.
type Parts struct {
	Namespace string
	Kind      string
	Version   string
}

// New composes an identifier from its parts.
func New(namespace, kind, version string) string {
	return Parts{Namespace: namespace, Kind: kind, Version: version}.String()
}

func (p Parts) String() string {
	b := &strings.Builder{}
	if p.Namespace != "" {
		b.WriteString(p.Namespace)
		b.WriteByte('/')
	}
	b.WriteString(p.Kind)
	if p.Version != "" {
		b.WriteByte('-')
		b.WriteString(p.Version)
	}
	return b.String()
}

// Parse splits id into its parts.
//
// The namespace is everything up to the first '/' following the last ':'
// (identifiers without ':' have no namespace). The version is a trailing
// "-<digits>[.<digits>]*" suffix of the kind.
func Parse(id string) (Parts, error) {
	if err := Check(id); err != nil {
		return Parts{}, err
	}
	var p Parts
	rest := id
	if i := strings.LastIndexByte(id, ':'); i != -1 {
		j := strings.IndexByte(id[i:], '/')
		if j == -1 {
			return Parts{}, fmt.Errorf("%w: %q: namespace without kind", ErrBadTag, id)
		}
		p.Namespace = id[:i+j]
		rest = id[i+j+1:]
	}
	p.Kind = rest
	if i := strings.LastIndexByte(rest, '-'); i != -1 && isVersion(rest[i+1:]) {
		p.Kind = rest[:i]
		p.Version = rest[i+1:]
	}
	if p.Kind == "" {
		return Parts{}, fmt.Errorf("%w: %q: empty kind", ErrBadTag, id)
	}
	return p, nil
}

// Kind returns the kind of id, or id itself if it does not parse.
func Kind(id string) string {
	p, err := Parse(id)
	if err != nil {
		return id
	}
	return p.Kind
}

// Check reports whether id can be used as an identifier: it must be non-empty,
// must not carry the YAML "!" prefix and must not contain whitespace or YAML
// flow indicators.
func Check(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrBadTag)
	}
	if id[0] == '!' {
		return fmt.Errorf("%w: %q: identifiers are stored without '!'", ErrBadTag, id)
	}
	if i := strings.IndexAny(id, " \t\r\n,[]{}!"); i != -1 {
		return fmt.Errorf("%w: %q: invalid char %q", ErrBadTag, id, id[i])
	}
	return nil
}

func isVersion(v string) bool {
	if v == "" {
		return false
	}
	digits := 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case '0' <= c && c <= '9':
			digits++
		case c == '.':
			if digits == 0 {
				return false
			}
			digits = 0
		default:
			return false
		}
	}
	return digits != 0
}
