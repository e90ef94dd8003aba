package payload

import "encoding/json"

type Serializable interface {
	Serialize() ([]byte, error)
	Deserialize([]byte) error
}

func EncodeJSONValue(v interface{}) (b []byte, err error) {
	return json.Marshal(v)
}

func DecodeJSONValue(b []byte, v interface{}) (err error) {
	return json.Unmarshal(b, v)
}
