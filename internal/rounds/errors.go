package rounds

import "errors"

var (
	ErrInvalidUpCard     = errors.New("up card must be between 1 and 10")
	ErrUpCardUnavailable = errors.New("shoe cannot supply the up card")
	ErrNilOracle         = errors.New("strategy oracle is required")
	ErrInvalidAction     = errors.New("oracle returned an invalid action")
	ErrIllegalAction     = errors.New("oracle chose an action the rules do not allow")
)
