package errors

import "fmt"

var (
	ErrInvalidPayload    = fmt.Errorf("invalid post payload")
	ErrInvalidPostID     = fmt.Errorf("invalid post id")
	ErrMissingRouteParam = fmt.Errorf("missing route parameter")
	ErrBodyRead          = fmt.Errorf("request body could not be read")
	ErrEncoding          = fmt.Errorf("response encoding failed")
	ErrStorage           = fmt.Errorf("post storage failure")
	ErrPostNotFound      = fmt.Errorf("post not found")
	ErrInvalidConfig     = fmt.Errorf("invalid configuration")
)
