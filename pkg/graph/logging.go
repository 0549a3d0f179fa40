package graph

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("graph", "evaluation graph documents")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
