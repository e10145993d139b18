package integration

import "errors"

// Error categories reported by the fetchers. Failures are wrapped with
// fmt.Errorf("%w: ...") so callers can match them with errors.Is.
var (
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("decode error")
	ErrParse   = errors.New("parse error")
)
