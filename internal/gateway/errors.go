package gateway

import "fmt"

// TransportError reports a failure to complete the HTTP round trip:
// network unreachable, DNS failure, timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a non-2xx gateway reply. Message carries the
// body's message field when the gateway provided one.
type ProtocolError struct {
	StatusCode int
	Message    string
}

func (e *ProtocolError) Error() string {
	return e.Message
}

// DecodeError reports a reply body that was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding gateway response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
