package model

import "fmt"

// Direction tells whether a projection goes from the plane to the sphere or
// the other way round.
type Direction int

const (
	Pix2Sky Direction = iota
	Sky2Pix
)

func (d Direction) String() string {
	switch d {
	case Pix2Sky:
		return "pix2sky"
	case Sky2Pix:
		return "sky2pix"
	default:
		return fmt.Sprintf("<direction %d>", int(d))
	}
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "pix2sky":
		return Pix2Sky, nil
	case "sky2pix":
		return Sky2Pix, nil
	}
	return 0, fmt.Errorf("unknown projection direction %q", s)
}

func (d Direction) Flip() Direction {
	if d == Pix2Sky {
		return Sky2Pix
	}
	return Pix2Sky
}

// ZenithalPerspective is the AZP projection: Mu is the distance of the point
// of projection from the centre of the sphere in sphere radii, Gamma the
// tilt angle in degrees.
type ZenithalPerspective struct {
	Base
	Direction Direction
	Mu        float64
	Gamma     float64
}

func NewPix2SkyAZP(mu, gamma float64) *ZenithalPerspective {
	return &ZenithalPerspective{Direction: Pix2Sky, Mu: mu, Gamma: gamma}
}

func NewSky2PixAZP(mu, gamma float64) *ZenithalPerspective {
	return &ZenithalPerspective{Direction: Sky2Pix, Mu: mu, Gamma: gamma}
}

func (m *ZenithalPerspective) NInputs() int  { return 2 }
func (m *ZenithalPerspective) NOutputs() int { return 2 }

func (m *ZenithalPerspective) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *ZenithalPerspective) StructuralInverse() (Model, error) {
	return &ZenithalPerspective{Direction: m.Direction.Flip(), Mu: m.Mu, Gamma: m.Gamma}, nil
}

// Gnomonic is the TAN projection.
type Gnomonic struct {
	Base
	Direction Direction
}

func NewPix2SkyTAN() *Gnomonic { return &Gnomonic{Direction: Pix2Sky} }
func NewSky2PixTAN() *Gnomonic { return &Gnomonic{Direction: Sky2Pix} }

func (m *Gnomonic) NInputs() int  { return 2 }
func (m *Gnomonic) NOutputs() int { return 2 }

func (m *Gnomonic) Rename(name string) Model {
	c := *m
	c.Base = m.renamed(name)
	return &c
}

func (m *Gnomonic) StructuralInverse() (Model, error) {
	return &Gnomonic{Direction: m.Direction.Flip()}, nil
}
