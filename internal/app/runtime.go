package app

import (
	"os"
	"strconv"
	"sync"
)

const testModeEnv = "PRODUCTDESK_TEST_MODE"

var inTestMode = sync.OnceValue(func() bool {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	return on
})

// InTestMode reports whether PRODUCTDESK_TEST_MODE is set, in which case the
// binaries return before opening connections or listeners.
func InTestMode() bool {
	return inTestMode()
}
