package healthz

import (
	"fmt"
	"sync"
	"time"

	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("healthz", "server health monitoring")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// Start configures a liveness check for key. The check is regarded as
// outdated if no Tick is reported for three periods.
func Start(key string, period time.Duration) {
	lock.Lock()
	defer lock.Unlock()

	checks[key] = &check{time.Now(), 3 * period}
}

func Tick(key string) {
	lock.Lock()
	defer lock.Unlock()

	c := checks[key]
	if c == nil {
		panic(fmt.Sprintf("check with key %q not configured", key))
	}
	c.last = time.Now()
}

func End(key string) {
	lock.Lock()
	defer lock.Unlock()

	delete(checks, key)
}

type check struct {
	last    time.Time
	timeout time.Duration
}

var (
	checks = map[string]*check{}
	lock   sync.Mutex
)

func HealthInfo() (bool, string) {
	lock.Lock()
	defer lock.Unlock()

	info := ""
	now := time.Now()
	for key, c := range checks {
		limit := now.Add(-c.timeout)
		info = fmt.Sprintf("%s%s: %s\n", info, key, c.last)
		if c.last.Before(limit) {
			log.Warn("outdated health check", "key", key, "delay", limit.Sub(c.last))
			return false, info
		}
		log.Debug("last health report", "key", key, "last", c.last)
	}
	return true, info
}
