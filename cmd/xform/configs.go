package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/transform"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	J       bool `cli:"name=j aliases=json desc='do i/o in the json form of nodes'"`
	Skip    bool `cli:"name=skip desc='skip nodes with unknown tags instead of failing'"`
	Color   bool `cli:"name=color desc='color tags even when not writing to a terminal'"`
	Verbose bool `cli:"name=v desc='log each conversion step'"`

	Main *cli.Command
}

func (cfg *MainConfig) format() codec.Format {
	if cfg.J {
		return codec.JSONFormat
	}
	return codec.YAMLFormat
}

func (cfg *MainConfig) registry() (*convert.Registry, error) {
	return transform.NewRegistry()
}

func (cfg *MainConfig) context(reg *convert.Registry) *convert.Context {
	return convert.NewContext(reg,
		convert.SkipUnknownTags(cfg.Skip),
		convert.WithLogger(theLog))
}

func (cfg *MainConfig) setLogLevel() {
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
}

// colors reports whether output to w should be colored.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		color.NoColor = false
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// inputFormat is JSON with -j or for files named *.json, and YAML
// otherwise.
func (cfg *MainConfig) inputFormat(file string) codec.Format {
	if cfg.J {
		return codec.JSONFormat
	}
	return codec.FormatOf(file)
}

// readDocs reads the documents of file, "-" being standard input. JSON
// input holds a single document.
func (cfg *MainConfig) readDocs(cc *cli.Context, file string) ([]*ir.Node, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	if cfg.inputFormat(file) == codec.YAMLFormat {
		return codec.ParseAll(r)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	node, err := codec.Parse(d, codec.ParseJSON())
	if err != nil {
		return nil, err
	}
	return []*ir.Node{node}, nil
}

func (cfg *MainConfig) encOpts() []codec.EncodeOption {
	return []codec.EncodeOption{codec.EncodeFormat(cfg.format())}
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only set the exit code'"`

	Check *cli.Command
}

type TagsConfig struct {
	*MainConfig
	Parts bool `cli:"name=parts desc='show namespace, kind and version columns'"`

	Tags *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ListConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='expression selecting the nodes to list'"`

	List *cli.Command
}
