package common

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
)

type Serializable interface {
	Serialize() ([]byte, error)
}

func GenerateUUID() string {
	return uuid.New().String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func GetUrlQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}

var (
	TrueQueryStringValue  []string = []string{"true", "yes", "1"}
	FalseQueryStringValue []string = []string{"false", "no", "0"}
)

func ParseBoolQueryString(v string) (yesno bool, ok bool) {
	if _, yesno = InStringArray(TrueQueryStringValue, strings.ToLower(v)); yesno {
		return true, true
	}
	if _, ok = InStringArray(FalseQueryStringValue, strings.ToLower(v)); ok {
		return false, true
	}

	return false, false
}

func EncodeJSONValue(i interface{}) ([]byte, error) {
	if s, ok := i.(Serializable); ok {
		return s.Serialize()
	}

	return json.Marshal(i)
}

// MustUnmarshalJSON is only for the data which was serialized by this
// process, like the records in storage.
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

func JSONMarshalIndent(o interface{}) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}
