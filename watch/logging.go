package watch

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("watch", "evaluation watch endpoint")

var log = logging.DefaultContext().Logger(REALM)
