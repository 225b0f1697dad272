package model

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Serialization uses an explicit "kind" discriminator on every Type and
// TypeParameter value. UnmarshalType(MarshalJSON(x)) yields a value deeply
// equal to x for every constructible tree.

type kindEnvelope struct {
	Kind Kind `json:"kind"`
}

func (t Any) MarshalJSON() ([]byte, error) {
	return json.Marshal(kindEnvelope{KindAny})
}

func (t Unknown) MarshalJSON() ([]byte, error) {
	return json.Marshal(kindEnvelope{KindUnknown})
}

func (t Undefined) MarshalJSON() ([]byte, error) {
	return json.Marshal(kindEnvelope{KindUndefined})
}

func (t LiteralString) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  Kind   `json:"kind"`
		Value string `json:"value"`
	}{KindLiteralString, t.Value})
}

func (t LiteralNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  Kind    `json:"kind"`
		Value float64 `json:"value"`
	}{KindLiteralNumber, t.Value})
}

func (t LiteralBoolean) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  Kind `json:"kind"`
		Value bool `json:"value"`
	}{KindLiteralBoolean, t.Value})
}

func (t Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     Kind   `json:"kind"`
		Text     string `json:"text"`
		TypeName string `json:"typeName"`
	}{KindPrimitive, t.Text, t.TypeName})
}

func (t Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Kind   `json:"kind"`
		Text string `json:"text"`
		Elem Type   `json:"elementsType"`
	}{KindArray, t.Text, t.Elem})
}

func (t Union) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  Kind   `json:"kind"`
		Text  string `json:"text"`
		Types []Type `json:"types"`
	}{KindUnion, t.Text, t.Types})
}

func (t Intersection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  Kind   `json:"kind"`
		Text  string `json:"text"`
		Types []Type `json:"types"`
	}{KindIntersection, t.Text, t.Types})
}

func (t Tuple) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  Kind   `json:"kind"`
		Text  string `json:"text"`
		Types []Type `json:"types"`
	}{KindTuple, t.Text, t.Types})
}

func (t Function) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      Kind      `json:"kind"`
		Text      string    `json:"text"`
		Signature Signature `json:"signature"`
	}{KindFunction, t.Text, t.Signature})
}

func (t HigherOrder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     Kind   `json:"kind"`
		Text     string `json:"text"`
		BaseName string `json:"baseName,omitempty"`
		Args     []Type `json:"arguments"`
	}{KindHigherOrder, t.Text, t.BaseName, t.Args})
}

func (t Other) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Kind   `json:"kind"`
		Text string `json:"text"`
	}{KindOther, t.Text})
}

// UnmarshalType decodes one discriminated Type value.
func UnmarshalType(data []byte) (Type, error) {
	var env kindEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decoding type kind")
	}

	switch env.Kind {
	case KindAny:
		return Any{}, nil
	case KindUnknown:
		return Unknown{}, nil
	case KindUndefined:
		return Undefined{}, nil
	case KindLiteralString:
		var raw struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return LiteralString{Value: raw.Value}, nil
	case KindLiteralNumber:
		var raw struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return LiteralNumber{Value: raw.Value}, nil
	case KindLiteralBoolean:
		var raw struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return LiteralBoolean{Value: raw.Value}, nil
	case KindPrimitive:
		var raw struct {
			Text     string `json:"text"`
			TypeName string `json:"typeName"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return Primitive{Text: raw.Text, TypeName: raw.TypeName}, nil
	case KindArray:
		var raw struct {
			Text string          `json:"text"`
			Elem json.RawMessage `json:"elementsType"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if isNull(raw.Elem) {
			return nil, errors.Newf("array type %q missing elementsType", raw.Text)
		}
		elem, err := UnmarshalType(raw.Elem)
		if err != nil {
			return nil, err
		}
		return Array{Text: raw.Text, Elem: elem}, nil
	case KindUnion, KindIntersection, KindTuple:
		var raw struct {
			Text  string            `json:"text"`
			Types []json.RawMessage `json:"types"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		types, err := unmarshalTypes(raw.Types)
		if err != nil {
			return nil, err
		}
		switch env.Kind {
		case KindUnion:
			return Union{Text: raw.Text, Types: types}, nil
		case KindIntersection:
			return Intersection{Text: raw.Text, Types: types}, nil
		default:
			return Tuple{Text: raw.Text, Types: types}, nil
		}
	case KindFunction:
		var raw struct {
			Text      string    `json:"text"`
			Signature Signature `json:"signature"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return Function{Text: raw.Text, Signature: raw.Signature}, nil
	case KindHigherOrder:
		var raw struct {
			Text     string            `json:"text"`
			BaseName string            `json:"baseName"`
			Args     []json.RawMessage `json:"arguments"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		args, err := unmarshalTypes(raw.Args)
		if err != nil {
			return nil, err
		}
		return HigherOrder{Text: raw.Text, BaseName: raw.BaseName, Args: args}, nil
	case KindOther:
		var raw struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return Other{Text: raw.Text}, nil
	default:
		return nil, errors.Newf("unknown Type kind %q", env.Kind)
	}
}

func unmarshalTypes(raws []json.RawMessage) ([]Type, error) {
	if raws == nil {
		return nil, nil
	}
	types := make([]Type, len(raws))
	for i, r := range raws {
		t, err := UnmarshalType(r)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

func (p Polymorphic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind TypeParameterKind `json:"kind"`
		Text string            `json:"text"`
	}{KindPolymorphic, p.Text})
}

func (p Constrained) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       TypeParameterKind `json:"kind"`
		Text       string            `json:"text"`
		Constraint Type              `json:"constraint"`
	}{KindConstrained, p.Text, p.Constraint})
}

func (p WithDefault) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    TypeParameterKind `json:"kind"`
		Text    string            `json:"text"`
		Default Type              `json:"default"`
	}{KindWithDefault, p.Text, p.Default})
}

// UnmarshalTypeParameter decodes one discriminated TypeParameter value.
func UnmarshalTypeParameter(data []byte) (TypeParameter, error) {
	var env struct {
		Kind TypeParameterKind `json:"kind"`
		Text string            `json:"text"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decoding type parameter kind")
	}

	switch env.Kind {
	case KindPolymorphic:
		return Polymorphic{Text: env.Text}, nil
	case KindConstrained:
		var raw struct {
			Constraint json.RawMessage `json:"constraint"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		c, err := UnmarshalType(raw.Constraint)
		if err != nil {
			return nil, err
		}
		return Constrained{Text: env.Text, Constraint: c}, nil
	case KindWithDefault:
		var raw struct {
			Default json.RawMessage `json:"default"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		d, err := UnmarshalType(raw.Default)
		if err != nil {
			return nil, err
		}
		return WithDefault{Text: env.Text, Default: d}, nil
	default:
		return nil, errors.Newf("unknown TypeParameter kind %q", env.Kind)
	}
}

func (p *Parameter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Name = raw.Name
	p.Type = nil
	if !isNull(raw.Type) {
		t, err := UnmarshalType(raw.Type)
		if err != nil {
			return err
		}
		p.Type = t
	}
	return nil
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var raw struct {
		TypeParameters []json.RawMessage `json:"typeParameters"`
		Parameters     []Parameter       `json:"parameters"`
		ReturnType     json.RawMessage   `json:"returnType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.TypeParameters = nil
	if raw.TypeParameters != nil {
		s.TypeParameters = make([]TypeParameter, len(raw.TypeParameters))
		for i, r := range raw.TypeParameters {
			tp, err := UnmarshalTypeParameter(r)
			if err != nil {
				return err
			}
			s.TypeParameters[i] = tp
		}
	}

	s.Parameters = raw.Parameters

	s.ReturnType = nil
	if !isNull(raw.ReturnType) {
		t, err := UnmarshalType(raw.ReturnType)
		if err != nil {
			return err
		}
		s.ReturnType = t
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
