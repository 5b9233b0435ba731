package notify

import (
	"pinnotify-go/errcode"
	"pinnotify-go/intc"
	"pinnotify-go/x/conv"
)

// Condition is the electrical condition that raises a pin interrupt.
type Condition uint8

const (
	AnyEdge Condition = iota
	RisingEdge
	FallingEdge
	LowLevel
	HighLevel
	Disabled
	// Max mirrors the controller's reserved upper bound. It exists so every
	// native value round-trips; it is not accepted as a trigger policy.
	Max
)

// Native returns the controller encoding of c.
func (c Condition) Native() intc.Trigger {
	switch c {
	case AnyEdge:
		return intc.TriggerAnyEdge
	case RisingEdge:
		return intc.TriggerPosEdge
	case FallingEdge:
		return intc.TriggerNegEdge
	case LowLevel:
		return intc.TriggerLowLevel
	case HighLevel:
		return intc.TriggerHighLevel
	case Disabled:
		return intc.TriggerDisable
	case Max:
		return intc.TriggerMax
	}
	panic("notify: invalid condition " + itoa(int(c)))
}

// ConditionFromNative decodes a controller trigger type. A value outside the
// controller's documented range is a contract violation and panics.
func ConditionFromNative(t intc.Trigger) Condition {
	switch t {
	case intc.TriggerAnyEdge:
		return AnyEdge
	case intc.TriggerPosEdge:
		return RisingEdge
	case intc.TriggerNegEdge:
		return FallingEdge
	case intc.TriggerLowLevel:
		return LowLevel
	case intc.TriggerHighLevel:
		return HighLevel
	case intc.TriggerDisable:
		return Disabled
	case intc.TriggerMax:
		return Max
	}
	panic("notify: controller returned unknown trigger type " + itoa(int(t)))
}

var conditionNames = [...]string{
	AnyEdge:     "any-edge",
	RisingEdge:  "rising-edge",
	FallingEdge: "falling-edge",
	LowLevel:    "low-level",
	HighLevel:   "high-level",
	Disabled:    "disabled",
	Max:         "max",
}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return "condition(" + itoa(int(c)) + ")"
}

// ParseCondition is the inverse of Condition.String.
func ParseCondition(s string) (Condition, error) {
	for i, name := range conditionNames {
		if name == s {
			return Condition(i), nil
		}
	}
	return 0, &errcode.E{C: errcode.InvalidParams, Op: "parse_condition", Msg: "unknown condition " + s}
}

// Conditions lists every condition usable as a trigger policy.
func Conditions() []Condition {
	return []Condition{AnyEdge, RisingEdge, FallingEdge, LowLevel, HighLevel, Disabled}
}

func itoa(n int) string {
	var buf [20]byte
	return string(conv.Itoa(buf[:], int64(n)))
}
