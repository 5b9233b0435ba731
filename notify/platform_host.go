//go:build !rp2040 && !rp2350

package notify

import (
	"pinnotify-go/intc"
	"pinnotify-go/intc/sim"
)

func platformController() intc.Controller { return sim.Shared() }
