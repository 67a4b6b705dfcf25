package retry

import (
	"time"

	"github.com/wb-go/wbf/retry"
)

// DefaultStrategy is applied to all database writes.
var DefaultStrategy = retry.Strategy{
	Attempts: 3,
	Delay:    500 * time.Millisecond,
	Backoff:  2.0,
}
