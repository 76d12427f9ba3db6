package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/tag"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

// listEnv is what a -where expression sees for each tagged node.
type listEnv struct {
	File      string `expr:"file"`
	Doc       int    `expr:"doc"`
	Path      string `expr:"path"`
	Tag       string `expr:"tag"`
	Namespace string `expr:"namespace"`
	Kind      string `expr:"kind"`
	Version   string `expr:"version"`
	Name      string `expr:"name"`
	Known     bool   `expr:"known"`
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var where *vm.Program
	if cfg.Where != "" {
		where, err = expr.Compile(cfg.Where, expr.Env(listEnv{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: bad -where expression: %w", cli.ErrUsage, err)
		}
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	paint := fmt.Sprintf
	if cfg.colors(cc.Out) {
		paint = pathColor
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	files := inputs(args)
	for _, file := range files {
		docs, err := cfg.readDocs(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		for i, doc := range docs {
			var walkErr error
			convert.Walk(doc, func(n *ir.Node, path string) bool {
				env := nodeEnv(reg, n)
				env.File, env.Doc, env.Path = file, i, path
				if where != nil {
					ok, err := expr.Run(where, env)
					if err != nil {
						walkErr = fmt.Errorf("%s: %w", path, err)
						return false
					}
					if !ok.(bool) {
						return true
					}
				}
				walkErr = writeEntry(tw, paint, len(files) > 1 || len(docs) > 1, env)
				return walkErr == nil
			})
			if walkErr != nil {
				return walkErr
			}
		}
	}
	return tw.Flush()
}

func nodeEnv(reg *convert.Registry, n *ir.Node) listEnv {
	env := listEnv{Tag: n.Tag}
	if p, err := tag.Parse(n.Tag); err == nil {
		env.Namespace, env.Kind, env.Version = p.Namespace, p.Kind, p.Version
	}
	if name := ir.Get(n, "name"); name != nil && name.Type == ir.StringType {
		env.Name = name.String
	}
	_, err := reg.ResolveTag(n.Tag)
	env.Known = err == nil
	return env
}

func writeEntry(w io.Writer, paint func(string, ...any) string, qualified bool, env listEnv) error {
	loc := env.Path
	if qualified {
		loc = fmt.Sprintf("%s:%d:%s", env.File, env.Doc, env.Path)
	}
	var err error
	if env.Name == "" {
		_, err = fmt.Fprintf(w, "%s\t%s\n", paint("%s", loc), env.Tag)
	} else {
		_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", paint("%s", loc), env.Tag, env.Name)
	}
	return err
}
