package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
)

// Unmarshal decodes a single JSON document into a wire value, keeping the
// order of object keys as they appear in the input. Duplicate keys are rejected.
func Unmarshal(data []byte) (any, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document from r
func Decode(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, wberrors.NewMalformedInputError("empty document")
		}
		return nil, wberrors.NewMalformedInputError(fmt.Sprintf("failed to parse json: %s", err.Error()))
	}

	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, wberrors.NewMalformedInputError("unexpected data after end of document")
	}

	return v, nil
}

func decodeValue(dec *j.Decoder, tok any) (any, error) {
	switch typed := tok.(type) {
	case j.Delim:
		switch typed {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, wberrors.NewMalformedInputError(fmt.Sprintf("unexpected delimiter %c", rune(typed)))
	case string:
		return typed, nil
	case bool:
		return typed, nil
	case j.Number:
		return json.Number(string(typed)), nil
	case float64:
		return json.Number(strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case nil:
		return nil, nil
	}

	return nil, wberrors.NewMalformedInputError(fmt.Sprintf("unexpected token %v", tok))
}

func decodeObject(dec *j.Decoder) (any, error) {
	obj := NewObject()

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, wberrors.NewMalformedInputError(fmt.Sprintf("failed to parse object: %s", err.Error()))
		}

		if d, ok := tok.(j.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, wberrors.NewMalformedInputError(fmt.Sprintf("expected object key, got %v", tok))
		}

		if obj.Has(key) {
			return nil, wberrors.NewMalformedInputError(fmt.Sprintf("duplicate key \"%s\"", key))
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, wberrors.NewMalformedInputError(fmt.Sprintf("failed to parse value of \"%s\": %s", key, err.Error()))
		}

		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}

		obj.Set(key, v)
	}
}

func decodeArray(dec *j.Decoder) (any, error) {
	arr := Array{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, wberrors.NewMalformedInputError(fmt.Sprintf("failed to parse array: %s", err.Error()))
		}

		if d, ok := tok.(j.Delim); ok && d == ']' {
			return arr, nil
		}

		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
	}
}

// Marshal encodes a wire value as compact JSON
func Marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeValue(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := j.Indent(buf, b, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(o)
}

func (a Array) MarshalJSON() ([]byte, error) {
	return Marshal(a)
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch typed := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(typed))
	case json.Number:
		if !j.Valid([]byte(typed)) {
			return fmt.Errorf("invalid number literal %q", string(typed))
		}
		buf.WriteString(string(typed))
	case *Object:
		return writeObject(buf, typed)
	case Array:
		return writeArray(buf, typed)
	case []any:
		return writeArray(buf, typed)
	default:
		b, err := j.Marshal(typed)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, o *Object) error {
	if o == nil {
		buf.WriteString("null")
		return nil
	}

	if o.Len() == 0 && o.format == MapsAsArrays {
		buf.WriteString("[]")
		return nil
	}

	buf.WriteByte('{')
	for i, e := range o.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := j.Marshal(e.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeValue(buf, e.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')

	return nil
}

func writeArray(buf *bytes.Buffer, a []any) error {
	buf.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}
