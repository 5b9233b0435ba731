//go:build rp2040 || rp2350

package notify

import (
	"pinnotify-go/intc"
	"pinnotify-go/intc/rp2"
)

func platformController() intc.Controller { return rp2.Shared() }
