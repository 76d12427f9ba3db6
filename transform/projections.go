package transform

import (
	"fmt"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
)

func decodeDirection(node *ir.Node) (model.Direction, error) {
	s, err := convert.StringOr(node, "direction", model.Pix2Sky.String())
	if err != nil {
		return 0, err
	}
	d, err := model.ParseDirection(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", convert.ErrBadPayload, err)
	}
	return d, nil
}

// zenithalPayload is the zenithal perspective projection (AZP).
type zenithalPayload struct{}

func (zenithalPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	d, err := decodeDirection(node)
	if err != nil {
		return nil, err
	}
	mu, err := convert.FloatOr(node, "mu", 0)
	if err != nil {
		return nil, err
	}
	gamma, err := convert.FloatOr(node, "gamma", 0)
	if err != nil {
		return nil, err
	}
	return &model.ZenithalPerspective{Direction: d, Mu: mu, Gamma: gamma}, nil
}

func (zenithalPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	z, ok := m.(*model.ZenithalPerspective)
	if !ok {
		return nil, wrongModel("a zenithal perspective projection", m)
	}
	return ir.FromMap(map[string]*ir.Node{
		"direction": ir.FromString(z.Direction.String()),
		"mu":        ir.FromFloat(z.Mu),
		"gamma":     ir.FromFloat(z.Gamma),
	}), nil
}

// gnomonicPayload is the gnomonic projection (TAN).
type gnomonicPayload struct{}

func (gnomonicPayload) DecodePayload(ctx *convert.Context, node *ir.Node) (model.Model, error) {
	d, err := decodeDirection(node)
	if err != nil {
		return nil, err
	}
	return &model.Gnomonic{Direction: d}, nil
}

func (gnomonicPayload) EncodePayload(ctx *convert.Context, m model.Model) (*ir.Node, error) {
	g, ok := m.(*model.Gnomonic)
	if !ok {
		return nil, wrongModel("a gnomonic projection", m)
	}
	return ir.FromMap(map[string]*ir.Node{"direction": ir.FromString(g.Direction.String())}), nil
}
