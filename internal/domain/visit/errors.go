package visit

import "errors"

// ErrInvalidInput indicates a visit missing its required fields.
var ErrInvalidInput = errors.New("invalid visit input")
