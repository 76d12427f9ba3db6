package transform

import (
	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/model"
)

func compound[K model.OpKind]() *Template {
	var k K
	return &Template{
		ID:      ID(k.Operator().Name()),
		GoTypes: typesOf(&model.Compound[K]{}),
		Payload: compoundPayload[K]{},
	}
}

// Bindings returns fresh bindings for every transform kind.
func Bindings() []convert.Binding {
	return []convert.Binding{
		&Template{ID: ID("identity"), GoTypes: typesOf(&model.Identity{}), Payload: identityPayload{}},
		&Template{ID: ID("constant"), GoTypes: typesOf(&model.Const1D{}), Payload: constantPayload{}},
		&Template{ID: ID("generic"), GoTypes: typesOf(&model.GenericModel{}), Payload: genericPayload{}},
		&Template{ID: ID("shift"), GoTypes: typesOf(&model.Shift{}), Payload: shiftPayload{}},
		&Template{ID: ID("scale"), GoTypes: typesOf(&model.Scale{}), Payload: scalePayload{}},
		&Template{ID: ID("rotate2d"), GoTypes: typesOf(&model.Rotation2D{}), Payload: rotationPayload{}},
		&Template{ID: ID("remap_axes"), GoTypes: typesOf(&model.Mapping{}), Payload: mappingPayload{}},
		&Template{
			ID:      ID("polynomial"),
			GoTypes: typesOf(&model.Polynomial1D{}, &model.Polynomial2D{}),
			Payload: polynomialPayload{},
		},
		&Template{ID: ID("affine"), GoTypes: typesOf(&model.AffineTransformation2D{}), Payload: affinePayload{}},
		&Template{ID: ID("zenithal_perspective"), GoTypes: typesOf(&model.ZenithalPerspective{}), Payload: zenithalPayload{}},
		&Template{ID: ID("gnomonic"), GoTypes: typesOf(&model.Gnomonic{}), Payload: gnomonicPayload{}},
		compound[model.AddOp](),
		compound[model.SubtractOp](),
		compound[model.MultiplyOp](),
		compound[model.DivideOp](),
		compound[model.PowerOp](),
		compound[model.ComposeOp](),
		compound[model.ConcatenateOp](),
		domainBinding{},
	}
}

// Register adds the transform bindings to reg.
func Register(reg *convert.Registry) error {
	for _, b := range Bindings() {
		if err := reg.Register(b); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a new registry holding the transform bindings.
func NewRegistry() (*convert.Registry, error) {
	return convert.NewRegistry(Bindings()...)
}
