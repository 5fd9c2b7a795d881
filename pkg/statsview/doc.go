// Package statsview serves runtime statistics of the running emulator over
// HTTP. It is only functional when built with the statsview tag:
//
//	go build -tags statsview ./cmd/desktop
//
// The charts are then viewable at http://<addr>/debug/statsview and the
// standard pprof pages at http://<addr>/debug/pprof/.
package statsview

// DefaultAddress is used when Launch is given an empty address.
const DefaultAddress = "localhost:18066"

const path = "/debug/statsview"

func url(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}
	return "http://" + addr + path
}
