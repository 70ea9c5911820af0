package l1

import "errors"

var (
	ErrUnsupportedEvent = errors.New("unsupported L1 event")
	ErrMalformedLog     = errors.New("malformed L1 log")
	ErrBlockNotFound    = errors.New("L1 block not found")
)
