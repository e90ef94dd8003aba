package httputils

import (
	"fmt"
	"net/http"

	"boscoin.io/ballot/lib/errors"
)

const (
	ProblemContentType = "application/problem+json"
	ProblemTypePrefix  = "https://boscoin.io/ballot/error/"
)

// Problem follows RFC 7807; the `*errors.Error` keeps its code and data, so
// the client can restore it.
type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
	}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail

	return p
}

func NewErrorProblem(err error, status int) Problem {
	e, ok := errors.Cause(err)
	if !ok {
		return NewDetailedStatusProblem(status, err.Error())
	}

	return Problem{
		Type:   fmt.Sprintf("%s%d", ProblemTypePrefix, e.Code),
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
		Data:   e.Data,
	}
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) Error() string {
	if len(p.Detail) > 0 {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}

	return p.Title
}

// ToError restores the `*errors.Error` from the problem; the unknown code
// becomes `ErrorHTTPProblem`.
func (p Problem) ToError() *errors.Error {
	var e *errors.Error
	if known, found := errors.Known(p.Code); found && p.Code != 0 {
		e = known.Clone()
	} else {
		e = errors.ErrorHTTPProblem.Clone().
			SetData("status", p.Status).
			SetData("title", p.Title)
		if len(p.Detail) > 0 {
			e.SetData("detail", p.Detail)
		}
	}

	for k, v := range p.Data {
		e.SetData(k, v)
	}

	return e
}
