package valuation

import "fmt"

// MalformedReplyError means the model reply could not be decoded as a JSON
// object. It is terminal for the request.
type MalformedReplyError struct {
	Err error
	// Raw is a truncated copy of the reply for logging.
	Raw string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("malformed model reply: %v", e.Err)
}

func (e *MalformedReplyError) Unwrap() error {
	return e.Err
}

// InvalidValuationError means the reply decoded but carries no usable
// headline value. There is no safe default for the price, so this is terminal.
type InvalidValuationError struct {
	Reason string
}

func (e *InvalidValuationError) Error() string {
	return "invalid valuation amount: " + e.Reason
}
