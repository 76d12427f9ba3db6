package ir

import (
	"encoding/json"
	"fmt"
)

type irBase struct {
	Type   Type     `json:"type"`
	Tag    string   `json:"tag,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Values []*Node  `json:"values,omitempty"`

	Number  string   `json:"number,omitempty"`
	Float64 *float64 `json:"float,omitempty"`
	Int64   *int64   `json:"int,omitempty"`
}

func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:    y.Type,
		Tag:     y.Tag,
		Fields:  y.Fields,
		Values:  y.Values,
		Number:  y.Number,
		Float64: y.Float64,
		Int64:   y.Int64,
	}
	switch y.Type {
	case StringType:
		type C struct {
			irBase
			String string `json:"string"`
		}
		return json.Marshal(C{irBase: *base, String: y.String})
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: y.Bool})
	case ObjectType:
		// empty objects keep an explicit fields list
		if base.Fields == nil {
			base.Fields = []string{}
		}
		type C struct {
			irBase
			Fields []string `json:"fields"`
		}
		return json.Marshal(C{irBase: *base, Fields: base.Fields})
	default:
		return json.Marshal(base)
	}
}

func (y *Node) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		String string `json:"string"`
		Bool   bool   `json:"bool"`
	}
	tmp := &C{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	y.Type = tmp.Type
	y.Tag = tmp.Tag
	y.Fields = tmp.Fields
	y.Values = tmp.Values
	y.Bool = tmp.Bool
	y.String = tmp.String
	y.Number = tmp.Number
	y.Int64 = tmp.Int64
	y.Float64 = tmp.Float64

	switch y.Type {
	case ObjectType:
		if len(y.Fields) != len(y.Values) {
			return fmt.Errorf("object with %d fields and %d values", len(y.Fields), len(y.Values))
		}
		for i, v := range y.Values {
			v.Parent = y
			v.ParentIndex = i
			v.ParentField = y.Fields[i]
		}
	case ArrayType:
		for i, v := range y.Values {
			v.Parent = y
			v.ParentIndex = i
		}
	}
	return nil
}
