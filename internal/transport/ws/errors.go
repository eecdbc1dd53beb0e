package ws

import "errors"

var (
	errMalformedPayload = errors.New("malformed intent payload")
	errUnknownIntent    = errors.New("unknown intent type")
)
