// Package debug holds tracing switches read from the environment. Setting
// XFORM_DEBUG_DECODE, XFORM_DEBUG_ENCODE or XFORM_DEBUG_REGISTRY to a true
// value makes the corresponding step print what it does to stderr.
package debug

import (
	"os"
	"strconv"
)

var (
	decode   = boolEnv("XFORM_DEBUG_DECODE")
	encode   = boolEnv("XFORM_DEBUG_ENCODE")
	registry = boolEnv("XFORM_DEBUG_REGISTRY")
)

func boolEnv(v string) bool {
	b, _ := strconv.ParseBool(os.Getenv(v))
	return b
}

func Decode() bool   { return decode }
func Encode() bool   { return encode }
func Registry() bool { return registry }
