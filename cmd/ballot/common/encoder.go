package common

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

type Encode func(v interface{}, w io.Writer) error

var DefaultEncodes = map[string]Encode{
	"json": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, false)
	},
	"prettyjson": func(v interface{}, w io.Writer) error {
		return jsonEncode(v, w, true)
	},
	"yaml": yamlEncode,
}

func GetEncode(format string) (Encode, error) {
	encode, found := DefaultEncodes[format]
	if !found {
		return nil, fmt.Errorf("%q not recognized", format)
	}

	return encode, nil
}

func jsonEncode(v interface{}, w io.Writer, pretty bool) error {
	e := json.NewEncoder(w)
	if pretty {
		e.SetIndent("", "  ")
	}

	return e.Encode(&v)
}

// yamlEncode follows the json field names.
func yamlEncode(v interface{}, w io.Writer) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var i interface{}
	if err = yaml.Unmarshal(b, &i); err != nil {
		return err
	}

	e := yaml.NewEncoder(w)
	defer e.Close()

	return e.Encode(i)
}
