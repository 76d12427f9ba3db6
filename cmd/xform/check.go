package main

import (
	"fmt"
	"math"

	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/libdiff"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	changed := false
	for _, file := range inputs(args) {
		docs, err := cfg.readDocs(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		for i, doc := range docs {
			diff, err := checkDoc(cfg, reg, doc)
			if err != nil {
				return fmt.Errorf("%s document %d: %w", file, i, err)
			}
			if diff == "" {
				theLog.Debug("unchanged", "file", file, "doc", i)
				continue
			}
			changed = true
			if cfg.Quiet {
				continue
			}
			fmt.Fprintf(cc.Out, "--- %s document %d\n%s", file, i, diff)
		}
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDoc decodes doc, encodes the result again and returns the line diff
// of the two serializations. Numbers are compared by value, so 1 and 1.0
// do not count as a change.
func checkDoc(cfg *CheckConfig, reg *convert.Registry, doc *ir.Node) (string, error) {
	v, err := convert.DecodeTree(cfg.context(reg), doc)
	if err != nil {
		return "", err
	}
	again, err := convert.EncodeTree(cfg.context(reg), v)
	if err != nil {
		return "", err
	}
	before, err := codec.Marshal(byValue(doc), cfg.encOpts()...)
	if err != nil {
		return "", err
	}
	after, err := codec.Marshal(byValue(again), cfg.encOpts()...)
	if err != nil {
		return "", err
	}
	return libdiff.Lines(string(before), string(after)), nil
}

// maxExactInt bounds the integers a float64 holds exactly.
const maxExactInt = 1 << 53

// byValue returns a copy of n in which floats holding an integer are
// written as integers.
func byValue(n *ir.Node) *ir.Node {
	res := n.Clone()
	var walk func(*ir.Node)
	walk = func(y *ir.Node) {
		if f := y.Float64; f != nil && *f == math.Trunc(*f) && math.Abs(*f) < maxExactInt {
			i := int64(*f)
			y.Float64, y.Int64, y.Number = nil, &i, ""
		}
		for _, v := range y.Values {
			walk(v)
		}
	}
	walk(res)
	return res
}
