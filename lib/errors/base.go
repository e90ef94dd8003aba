package errors

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	pkgerrors "github.com/pkg/errors"
)

type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty" rlp:"-"`
}

func (o *Error) Serialize() (b []byte, err error) {
	b, err = json.Marshal(o)
	return
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func (o *Error) SetData(k string, v interface{}) *Error {
	if o.Data == nil {
		o.Data = map[string]interface{}{}
	}
	o.Data[k] = v

	return o
}

func (o *Error) GetData(k string) interface{} {
	if o.Data == nil {
		return nil
	}

	return o.Data[k]
}

func (o *Error) Clone() *Error {
	var n Error
	n = *o

	n.Data = map[string]interface{}{}
	for k, v := range o.Data {
		n.Data[k] = v
	}

	return &n
}

// Equal compares only the error codes, so a cloned error with extra `Data`
// still equals the pre-defined one.
func (o *Error) Equal(err error) bool {
	e, ok := err.(*Error)
	if !ok || e == nil || o == nil {
		return false
	}

	return o.Code == e.Code
}

func (o *Error) EncodeRLP(w io.Writer) (err error) {
	if o == nil {
		return rlp.Encode(w, []uint{})
	}

	if len(o.Data) > 0 {
		var d [][2]interface{}

		var keys []string
		for k := range o.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			d = append(d, [2]interface{}{k, o.Data[k]})
		}
		if err = rlp.Encode(w, d); err != nil {
			return
		}
	}

	return rlp.Encode(w, struct {
		Code    uint
		Message string
	}{
		Code:    o.Code,
		Message: o.Message,
	})
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

// Is reports whether the cause of err is a `*Error` with the same code as
// target.
func Is(err error, target *Error) bool {
	if err == nil {
		return false
	}

	return target.Equal(pkgerrors.Cause(err))
}

// Cause returns the underlying `*Error`, if any.
func Cause(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}

	e, ok := pkgerrors.Cause(err).(*Error)
	return e, ok
}

// Known finds the pre-defined error for the given code.
func Known(code uint) (*Error, bool) {
	e, found := registry[code]
	return e, found
}

var registry = map[uint]*Error{}

func register(code uint, message string) *Error {
	e := NewError(code, message)
	registry[code] = e
	return e
}
