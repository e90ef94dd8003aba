package storage

import (
	"net/url"
	"strconv"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/errors"
)

var DefaultMaxLimitListOptions uint64 = 100

type ListOptions interface {
	Reverse() bool
	Cursor() []byte
	Limit() uint64
	URLValues() url.Values
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{
		reverse: reverse,
		cursor:  cursor,
		limit:   limit,
	}
}

// NewDefaultListOptionsFromQuery parses `reverse`, `cursor` and `limit`
// from the url query.
func NewDefaultListOptionsFromQuery(v url.Values) (options *DefaultListOptions, err error) {
	var reverse bool
	if r := v.Get("reverse"); len(r) > 0 {
		var ok bool
		if reverse, ok = common.ParseBoolQueryString(r); !ok {
			return nil, errors.ErrorBadRequestParameter.Clone().SetData("reverse", r)
		}
	}

	var limit uint64 = DefaultMaxLimitListOptions
	if l := v.Get("limit"); len(l) > 0 {
		if limit, err = strconv.ParseUint(l, 10, 64); err != nil {
			return nil, errors.ErrorBadRequestParameter.Clone().SetData("limit", l)
		}
		if limit > DefaultMaxLimitListOptions {
			limit = DefaultMaxLimitListOptions
		}
	}

	var cursor []byte
	if c := v.Get("cursor"); len(c) > 0 {
		cursor = []byte(c)
	}

	return NewDefaultListOptions(reverse, cursor, limit), nil
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o DefaultListOptions) URLValues() url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(o.reverse)},
	}

	if len(o.cursor) > 0 {
		v.Set("cursor", string(o.cursor))
	}
	if o.limit > 0 {
		v.Set("limit", strconv.FormatUint(o.limit, 10))
	}

	return v
}
