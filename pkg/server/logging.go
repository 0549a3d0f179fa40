package server

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("server", "http serving of evaluation services")

var log logging.Logger = logging.DefaultContext().Logger(REALM)
