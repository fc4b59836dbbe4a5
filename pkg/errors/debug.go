package errors

import (
	"errors"
	"fmt"
)

// upstreamFailure is implemented by errors describing a non-2xx reply from the KairosMix API.
type upstreamFailure interface {
	UpstreamStatus() int
	UpstreamOperation() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus    int    `json:"upstream_status,omitempty"`
	UpstreamOperation string `json:"upstream_operation,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var upstream upstreamFailure
	if errors.As(err, &upstream) {
		d.UpstreamStatus = upstream.UpstreamStatus()
		d.UpstreamOperation = upstream.UpstreamOperation()
	}

	return d
}
