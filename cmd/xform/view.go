package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/tony-format/go-xform/codec"
	"github.com/signadot/tony-format/go-xform/convert"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		if err := viewFile(cfg, cc, reg, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i < len(files)-1 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, reg *convert.Registry, file string) error {
	docs, err := cfg.readDocs(cc, file)
	if err != nil {
		return err
	}
	colored := cfg.colors(cc.Out)
	known := func(id string) bool {
		_, err := reg.ResolveTag(id)
		return err == nil
	}
	for i, doc := range docs {
		buf := &bytes.Buffer{}
		if err := codec.Encode(doc, buf, cfg.encOpts()...); err != nil {
			return fmt.Errorf("error encoding document %d: %w", i, err)
		}
		d := buf.Bytes()
		if colored && cfg.format() == codec.YAMLFormat {
			d = colorTags(d, known)
		}
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if _, err := cc.Out.Write(d); err != nil {
			return fmt.Errorf("error writing document %d: %w", i, err)
		}
	}
	return nil
}
