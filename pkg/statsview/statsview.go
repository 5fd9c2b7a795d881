//go:build statsview

package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Launch starts the statistics server in the background.
func Launch(addr string, logger *log.Logger) {
	if addr == "" {
		addr = DefaultAddress
	}
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()
	logger.Info("Stats server available", log.String("url", url(addr)))
}

func Available() bool {
	return true
}
