//go:build rp2040

// Command pico-notify: pin interrupt demo for RP2040/Pico.
//
// Build/flash (TinyGo):
//   tinygo flash -target pico ./cmd/pico-notify
//
// Wiring assumptions:
// - Push button from GP14 to GND (internal pull-up).
// - Optional PCA9554 on I2C0 (SDA=GP4, SCL=GP5) at 0x20, INT# to GP15.
//   Expander line 0 is treated as a second button.
package main

import (
	"machine"
	"time"

	"pinnotify-go/boards"
	"pinnotify-go/intc/expander"
	"pinnotify-go/notify"
	"pinnotify-go/pins"
	"pinnotify-go/x/irqring"
)

const (
	buttonPin   = 14
	expanderInt = 15
	debounce    = 30 * time.Millisecond
)

func main() {
	time.Sleep(2 * time.Second)
	println("== pico-notify ==")

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	reg := pins.New(boards.Pico)

	btn, err := reg.Claim("button", buttonPin)
	if err != nil {
		println("claim button:", err.Error())
		return
	}
	machine.Pin(buttonPin).Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// Callbacks run in interrupt context: queue and return.
	presses := irqring.New(16)
	sub, err := notify.SubscribeWithCondition(btn, notify.FallingEdge, func() {
		presses.Push(buttonPin)
	})
	if err != nil {
		println("subscribe button:", err.Error())
		return
	}
	defer sub.Unsubscribe()
	println("button armed on GP14")

	// The expander callback runs on the service goroutine, a second
	// producer, so it gets a ring of its own.
	extPresses := irqring.New(8)
	ext := startExpander(reg, extPresses)
	if ext != nil {
		defer ext.Unsubscribe()
	}

	var (
		last time.Time
		on   bool
		buf  [16]irqring.Event
	)
	handle := func(r *irqring.Ring) {
		for _, ev := range r.Drain(buf[:0]) {
			now := time.Now()
			if now.Sub(last) < debounce {
				continue
			}
			last = now
			on = !on
			led.Set(on)
			print("press gp", ev.Pin, " #", ev.Seq)
			if on {
				println(": led on")
			} else {
				println(": led off")
			}
		}
		if d := r.Dropped(); d > 0 {
			println("dropped:", d)
		}
	}
	for {
		select {
		case <-presses.Readable():
			handle(presses)
		case <-extPresses.Readable():
			handle(extPresses)
		}
	}
}

// startExpander arms the expander INT# line and services the expander from
// a goroutine. It returns nil when no expander answers.
func startExpander(reg *pins.Registry, presses *irqring.Ring) *notify.Subscription {
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{SDA: machine.GP4, SCL: machine.GP5, Frequency: 400 * machine.KHz}); err != nil {
		println("i2c0:", err.Error())
		return nil
	}
	dev := expander.New(i2c, expander.DefaultAddress)
	ex := notify.New(dev)
	// The first subscribe reads the input port: no answer, no expander.
	if _, err := ex.SubscribeWithCondition(notify.PinNumber(0), notify.FallingEdge, func() {
		presses.Push(expanderInt)
	}); err != nil {
		println("expander not found:", err.Error())
		return nil
	}

	intPin, err := reg.Claim("expander", expanderInt)
	if err != nil {
		println("claim int:", err.Error())
		return nil
	}
	machine.Pin(expanderInt).Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	wake := make(chan struct{}, 1)
	sub, err := notify.SubscribeWithCondition(intPin, notify.FallingEdge, func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	if err != nil {
		println("subscribe int:", err.Error())
		return nil
	}
	go func() {
		for range wake {
			if _, err := dev.Service(); err != nil {
				println("expander service:", err.Error())
			}
		}
	}()
	println("expander armed on GP15")
	return sub
}
