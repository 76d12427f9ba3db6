package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/signadot/tony-format/go-xform/tag"

	"github.com/scott-cotton/cli"
)

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tags.Parse(cc, args)
	if err != nil {
		cfg.Tags.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: tags takes no arguments, got %v", cli.ErrUsage, args)
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	paint := fmt.Sprintf
	if cfg.colors(cc.Out) {
		paint = knownTagColor
	}
	if !cfg.Parts {
		for _, id := range reg.Tags() {
			fmt.Fprintln(cc.Out, paint("%s", id))
		}
		return nil
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMESPACE\tKIND\tVERSION")
	for _, id := range reg.Tags() {
		p, err := tag.Parse(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Namespace, paint("%s", p.Kind), p.Version)
	}
	return tw.Flush()
}
