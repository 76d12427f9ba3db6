package main

import (
	"regexp"

	"github.com/fatih/color"
)

var (
	knownTagColor   = color.RGB(74, 92, 138).SprintfFunc()
	unknownTagColor = color.RGB(196, 64, 64).SprintfFunc()
	pathColor       = color.RGB(128, 168, 196).SprintfFunc()
)

// tagRe matches the local tags written by the codec, with the character
// before them.
var tagRe = regexp.MustCompile(`(^|[\s\[{,:-])!([^\s,\[\]{}]+)`)

// colorTags colors the tags of a serialized document, telling registered
// tags from others.
func colorTags(d []byte, known func(string) bool) []byte {
	return tagRe.ReplaceAllFunc(d, func(m []byte) []byte {
		sub := tagRe.FindSubmatch(m)
		id := string(sub[2])
		paint := unknownTagColor
		if known(id) {
			paint = knownTagColor
		}
		res := make([]byte, 0, len(m)+16)
		res = append(res, sub[1]...)
		return append(res, paint("!%s", id)...)
	})
}
