package value

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
)

type Type byte

const (
	Nil     Type = 0x00
	SInt    Type = 0x01
	UInt    Type = 0x02
	String  Type = 0x03
	Boolean Type = 0x04
	// JSON encoded struct, slice or map
	Object Type = 0x05
)

const (
	True  = 0x01
	False = 0x00
)

// Value is the return value of the contract method.
type Value struct {
	Type  Type
	value interface{}
}

func ToValue(iv interface{}) (v *Value, err error) {
	v = &Value{}

	if b, ok := iv.([]byte); ok {
		if iv, err = decode(b); err != nil {
			return
		}
	}

	v.value = iv

	switch t := iv.(type) {
	case nil:
		v.Type = Nil
	case string:
		v.Type = String
	case bool:
		v.Type = Boolean
	case int:
		v.Type, v.value = SInt, int64(t)
	case int8:
		v.Type, v.value = SInt, int64(t)
	case int16:
		v.Type, v.value = SInt, int64(t)
	case int32:
		v.Type, v.value = SInt, int64(t)
	case int64:
		v.Type = SInt
	case uint:
		v.Type, v.value = UInt, uint64(t)
	case uint8:
		v.Type, v.value = UInt, uint64(t)
	case uint16:
		v.Type, v.value = UInt, uint64(t)
	case uint32:
		v.Type, v.value = UInt, uint64(t)
	case uint64:
		v.Type = UInt
	case json.RawMessage:
		v.Type = Object
	case float32, float64:
		v.Type = Nil
		err = errors.New("not yet supported type")
	default:
		var b []byte
		if b, err = json.Marshal(iv); err != nil {
			v.Type = Nil
			return
		}
		v.Type, v.value = Object, json.RawMessage(b)
	}
	return
}

func MustToValue(iv interface{}) *Value {
	v, err := ToValue(iv)
	if err != nil {
		panic(err)
	}
	return v
}

func decode(b []byte) (interface{}, error) {
	if len(b) < 1 {
		return nil, errors.New("empty encoded value")
	}

	encoded := b[1:]
	switch Type(b[0]) {
	case Nil:
		return nil, nil
	case String:
		return string(encoded), nil
	case SInt:
		if len(encoded) != 8 {
			return nil, errors.New("invalid encoded int")
		}
		return int64(binary.LittleEndian.Uint64(encoded)), nil
	case UInt:
		if len(encoded) != 8 {
			return nil, errors.New("invalid encoded uint")
		}
		return binary.LittleEndian.Uint64(encoded), nil
	case Boolean:
		if len(encoded) != 1 {
			return nil, errors.New("invalid encoded bool")
		}
		return encoded[0] == True, nil
	case Object:
		return json.RawMessage(encoded), nil
	default:
		return nil, fmt.Errorf("unknown value type: %d", b[0])
	}
}

func (v *Value) Serialize() (encoded []byte, err error) {
	switch v.Type {
	case Nil:
		encoded = []byte{}
	case SInt:
		encoded = make([]byte, 8)
		binary.LittleEndian.PutUint64(encoded, uint64(v.value.(int64)))
	case UInt:
		encoded = make([]byte, 8)
		binary.LittleEndian.PutUint64(encoded, v.value.(uint64))
	case String:
		encoded = []byte(v.value.(string))
	case Boolean:
		if v.value.(bool) {
			encoded = []byte{True}
		} else {
			encoded = []byte{False}
		}
	case Object:
		encoded = []byte(v.value.(json.RawMessage))
	}

	encoded = append([]byte{byte(v.Type)}, encoded...)

	return
}

func (v *Value) Interface() interface{} {
	return v.value
}

func (v *Value) String() string {
	switch v.Type {
	case Nil:
		return ""
	case Object:
		return string(v.value.(json.RawMessage))
	default:
		return fmt.Sprintf("%v", v.value)
	}
}

func (v *Value) Uint64() (uint64, error) {
	if n, ok := v.value.(uint64); ok {
		return n, nil
	}

	return 0, fmt.Errorf("value is not uint: %v", v.Type)
}

// Decode decodes the `Object` value into i.
func (v *Value) Decode(i interface{}) error {
	raw, ok := v.value.(json.RawMessage)
	if !ok {
		return fmt.Errorf("value is not object: %v", v.Type)
	}

	return json.Unmarshal(raw, i)
}

func (v *Value) EqualNative(i interface{}) bool {
	o, err := ToValue(i)
	if err != nil {
		return false
	}
	if o.Type != v.Type {
		return false
	}
	if v.Type == Object {
		return string(o.value.(json.RawMessage)) == string(v.value.(json.RawMessage))
	}

	return o.value == v.value
}

type jsonValue struct {
	Type  Type            `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (v *Value) MarshalJSON() ([]byte, error) {
	var raw []byte
	var err error
	switch v.Type {
	case Object:
		raw = v.value.(json.RawMessage)
	case UInt, SInt:
		// keep the 64 bits integer as string
		raw, err = json.Marshal(fmt.Sprintf("%d", v.value))
	default:
		raw, err = json.Marshal(v.value)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(jsonValue{Type: v.Type, Value: raw})
}

func (v *Value) UnmarshalJSON(b []byte) (err error) {
	var j jsonValue
	if err = json.Unmarshal(b, &j); err != nil {
		return
	}

	v.Type = j.Type
	switch j.Type {
	case Nil:
		v.value = nil
	case String:
		var s string
		err = json.Unmarshal(j.Value, &s)
		v.value = s
	case Boolean:
		var t bool
		err = json.Unmarshal(j.Value, &t)
		v.value = t
	case SInt:
		var s string
		if err = json.Unmarshal(j.Value, &s); err != nil {
			return
		}
		var n int64
		_, err = fmt.Sscanf(s, "%d", &n)
		v.value = n
	case UInt:
		var s string
		if err = json.Unmarshal(j.Value, &s); err != nil {
			return
		}
		var n uint64
		_, err = fmt.Sscanf(s, "%d", &n)
		v.value = n
	case Object:
		v.value = j.Value
	default:
		err = fmt.Errorf("unknown value type: %d", j.Type)
	}

	return
}
