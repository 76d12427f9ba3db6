package convert

import (
	"io"
	"log/slog"
	"reflect"

	"github.com/signadot/tony-format/go-xform/ir"
)

const DefaultMaxDepth = 256

// Context carries the state of one conversion pass. It is created per
// pass and must not be shared between goroutines.
type Context struct {
	reg *Registry

	skipUnknown bool
	maxDepth    int
	log         *slog.Logger

	// field path segments from the root of the pass
	path  []string
	depth int

	// decoded objects by source node, so aliased nodes decode once
	cache map[*ir.Node]any
	// nodes whose decoding has started but not finished
	active map[*ir.Node]bool

	skipped []Skipped
}

// Skipped records a node left out because its tag was not registered.
type Skipped struct {
	Tag  string
	Path string
}

type Option func(*Context)

// SkipUnknownTags makes DecodeAny return a nil object for nodes with an
// unregistered tag instead of failing. Skips are logged and recorded.
func SkipUnknownTags(v bool) Option {
	return func(c *Context) { c.skipUnknown = v }
}

// MaxDepth bounds the nesting of tagged nodes handled by one pass.
func MaxDepth(n int) Option {
	return func(c *Context) { c.maxDepth = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// NewContext starts a pass over reg, freezing it.
func NewContext(reg *Registry, opts ...Option) *Context {
	reg.Freeze()
	c := &Context{
		reg:      reg,
		maxDepth: DefaultMaxDepth,
		cache:    map[*ir.Node]any{},
		active:   map[*ir.Node]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

func (c *Context) ResolveTag(id string) (Binding, error) {
	return c.reg.ResolveTag(id)
}

func (c *Context) ResolveType(ty reflect.Type) (Binding, error) {
	return c.reg.ResolveType(ty)
}

func (c *Context) Logger() *slog.Logger {
	return c.log
}

// Path returns the location currently being converted, e.g.
// "$.forward[1].inverse".
func (c *Context) Path() string {
	p := "$"
	for _, seg := range c.path {
		p += seg
	}
	return p
}

// Skipped returns the nodes skipped so far in skip mode.
func (c *Context) Skipped() []Skipped {
	return c.skipped
}

func (c *Context) push(seg string) func() {
	c.path = append(c.path, seg)
	return func() { c.path = c.path[:len(c.path)-1] }
}

func fieldSeg(key string) string {
	return ir.AppendField("", key)
}

func indexSeg(i int) string {
	return ir.AppendIndex("", i)
}

// DecodeField decodes the tagged node n found under key of the node being
// decoded.
func (c *Context) DecodeField(key string, n *ir.Node) (any, error) {
	defer c.push(fieldSeg(key))()
	return DecodeAny(c, n)
}

// DecodeElem decodes the tagged node n found at index i of the array being
// decoded.
func (c *Context) DecodeElem(i int, n *ir.Node) (any, error) {
	defer c.push(indexSeg(i))()
	return DecodeAny(c, n)
}

// DecodeTreeField is DecodeField for subtrees that need not be tagged.
func (c *Context) DecodeTreeField(key string, n *ir.Node) (any, error) {
	defer c.push(fieldSeg(key))()
	return DecodeTree(c, n)
}

func (c *Context) EncodeField(key string, v any) (*ir.Node, error) {
	defer c.push(fieldSeg(key))()
	return EncodeAny(c, v)
}

func (c *Context) EncodeElem(i int, v any) (*ir.Node, error) {
	defer c.push(indexSeg(i))()
	return EncodeAny(c, v)
}

func (c *Context) EncodeTreeField(key string, v any) (*ir.Node, error) {
	defer c.push(fieldSeg(key))()
	return EncodeTree(c, v)
}
