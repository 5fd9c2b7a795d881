//go:build !statsview

package statsview

import "github.com/retroenv/retrogolib/log"

// Launch only logs that statistics are unavailable in this build.
func Launch(addr string, logger *log.Logger) {
	logger.Warn("Stats server not available, rebuild with -tags statsview", log.String("url", url(addr)))
}

func Available() bool {
	return false
}
