package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalMsgpack encodes a wire value as msgpack. Object keys keep their order.
func MarshalMsgpack(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := msgpack.NewEncoder(buf)

	if err := encodeMsgpackValue(enc, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (o *Object) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeMsgpackValue(enc, o)
}

func encodeMsgpackValue(enc *msgpack.Encoder, v any) error {
	switch typed := v.(type) {
	case nil:
		return enc.EncodeNil()
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return enc.EncodeInt(i)
		}
		f, err := typed.Float64()
		if err != nil {
			return fmt.Errorf("invalid number literal %q", string(typed))
		}
		return enc.EncodeFloat64(f)
	case *Object:
		if typed == nil {
			return enc.EncodeNil()
		}
		if typed.Len() == 0 && typed.format == MapsAsArrays {
			return enc.EncodeArrayLen(0)
		}
		if err := enc.EncodeMapLen(typed.Len()); err != nil {
			return err
		}
		for _, e := range typed.Entries() {
			if err := enc.EncodeString(e.Key); err != nil {
				return err
			}
			if err := encodeMsgpackValue(enc, e.Value); err != nil {
				return err
			}
		}
		return nil
	case Array:
		return encodeMsgpackArray(enc, typed)
	case []any:
		return encodeMsgpackArray(enc, typed)
	default:
		return enc.Encode(typed)
	}
}

func encodeMsgpackArray(enc *msgpack.Encoder, a []any) error {
	if err := enc.EncodeArrayLen(len(a)); err != nil {
		return err
	}
	for _, v := range a {
		if err := encodeMsgpackValue(enc, v); err != nil {
			return err
		}
	}
	return nil
}
