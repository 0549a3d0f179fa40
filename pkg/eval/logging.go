package eval

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("eval", "dependency-driven evaluation graph")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
