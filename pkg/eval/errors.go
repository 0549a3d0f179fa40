package eval

import (
	"fmt"
)

var ErrNotSet = fmt.Errorf("variable not set")

var ErrUnknownExpression = fmt.Errorf("unknown expression")

var ErrUnknownVariable = fmt.Errorf("unknown variable")

var ErrAlreadyRegistered = fmt.Errorf("name already registered")
