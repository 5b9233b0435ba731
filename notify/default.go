package notify

import "sync"

var (
	defaultOnce sync.Once
	defaultN    *Notifier
)

// Default returns the Notifier bound to the platform controller: the
// machine-backed controller on RP2 builds, the shared simulator on host
// builds.
func Default() *Notifier {
	defaultOnce.Do(func() { defaultN = New(platformController()) })
	return defaultN
}

// Subscribe is Default().Subscribe.
func Subscribe(pin Pin, cb func()) (*Subscription, error) {
	return Default().Subscribe(pin, cb)
}

// SubscribeWithCondition is Default().SubscribeWithCondition.
func SubscribeWithCondition(pin Pin, cond Condition, cb func()) (*Subscription, error) {
	return Default().SubscribeWithCondition(pin, cond, cb)
}

// ConfigureInterrupt is Default().ConfigureInterrupt.
func ConfigureInterrupt(pin Pin, cond Condition) error {
	return Default().ConfigureInterrupt(pin, cond)
}
