package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"pinnotify-go/boards"
	"pinnotify-go/intc/sim"
	"pinnotify-go/notify"
	"pinnotify-go/pins"
	"pinnotify-go/x/irqring"
)

const owner = "irqsim"

// Scenario is the YAML document accepted by `irqsim run`.
type Scenario struct {
	Board         string         `yaml:"board"`
	Subscriptions []Subscription `yaml:"subscriptions"`
	Script        []string       `yaml:"script"`
}

type Subscription struct {
	Pin       int    `yaml:"pin"`
	Condition string `yaml:"condition"`
}

// LoadScenario decodes a scenario, rejecting unknown keys.
func LoadScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scenario")
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if sc.Board == "" {
		sc.Board = boards.Host.Name
	}
	return &sc, nil
}

func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadScenario(f)
}

// tap counts deliveries for one pin. The counter outlives the subscription
// so that expect still works after unsubscribe.
type tap struct {
	sub   *notify.Subscription
	count atomic.Int64
}

// Runner plays a scenario against a fresh simulated controller.
type Runner struct {
	ctrl *sim.Controller
	n    *notify.Notifier
	reg  *pins.Registry
	taps map[int]*tap
	ring *irqring.Ring
	out  io.Writer

	failed int
}

// NewRunner builds the controller, notifier and pin registry for board.
func NewRunner(board string, out io.Writer, log *slog.Logger) (*Runner, error) {
	b, ok := boards.Lookup(board)
	if !ok {
		return nil, fmt.Errorf("unknown board %q", board)
	}
	ctrl := sim.New()
	return &Runner{
		ctrl: ctrl,
		n:    notify.New(ctrl, notify.WithLogger(log)),
		reg:  pins.New(b),
		taps: map[int]*tap{},
		ring: irqring.New(64),
		out:  out,
	}, nil
}

// Controller exposes the simulated controller for inspection.
func (r *Runner) Controller() *sim.Controller { return r.ctrl }

// Count returns the deliveries seen on pin so far.
func (r *Runner) Count(pin int) int64 {
	if t, ok := r.taps[pin]; ok {
		return t.count.Load()
	}
	return 0
}

// Failed returns the number of failed expectations.
func (r *Runner) Failed() int { return r.failed }

// Run subscribes every listed pin, executes the script and tears everything
// down. Script errors abort the run; failed expectations do not, and are
// reported through the returned error once the script ends.
func (r *Runner) Run(sc *Scenario) error {
	defer r.Close()
	for _, s := range sc.Subscriptions {
		cond, err := parseCondition(s.Condition)
		if err != nil {
			return fmt.Errorf("subscription pin %d: %w", s.Pin, err)
		}
		if err := r.subscribe(s.Pin, cond); err != nil {
			return fmt.Errorf("subscription pin %d: %w", s.Pin, err)
		}
	}
	for i, line := range sc.Script {
		if err := r.Exec(line); err != nil {
			return fmt.Errorf("script line %d %q: %w", i+1, line, err)
		}
	}
	if r.failed > 0 {
		return fmt.Errorf("%d expectation(s) failed", r.failed)
	}
	return nil
}

// Close unsubscribes everything still live.
func (r *Runner) Close() {
	for pin, t := range r.taps {
		if t.sub != nil {
			t.sub.Unsubscribe()
			t.sub = nil
			r.reg.Release(owner, pin)
		}
	}
}

// Exec runs one script line. Blank lines and # comments do nothing.
func (r *Runner) Exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "level":
		if len(args) != 2 {
			return errors.New("usage: level <pin> high|low")
		}
		pin, err := r.pin(args[0])
		if err != nil {
			return err
		}
		var high bool
		switch args[1] {
		case "high", "1":
			high = true
		case "low", "0":
		default:
			return fmt.Errorf("bad level %q", args[1])
		}
		ran := r.ctrl.SetLevel(pin, high)
		r.printf("level %d %s delivered=%t\n", pin, args[1], ran)
		r.flush()

	case "fire":
		if len(args) != 1 {
			return errors.New("usage: fire <pin>")
		}
		pin, err := r.pin(args[0])
		if err != nil {
			return err
		}
		ran := r.ctrl.Fire(pin)
		r.printf("fire %d delivered=%t\n", pin, ran)
		r.flush()

	case "subscribe":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: subscribe <pin> [condition]")
		}
		pin, err := r.pin(args[0])
		if err != nil {
			return err
		}
		cond := notify.AnyEdge
		if len(args) == 2 {
			if cond, err = notify.ParseCondition(args[1]); err != nil {
				return err
			}
		}
		return r.subscribe(pin, cond)

	case "configure":
		if len(args) != 2 {
			return errors.New("usage: configure <pin> <condition>")
		}
		pin, err := r.pin(args[0])
		if err != nil {
			return err
		}
		cond, err := notify.ParseCondition(args[1])
		if err != nil {
			return err
		}
		in, err := r.reg.Claim(owner, pin)
		if err != nil {
			return err
		}
		if err := r.n.ConfigureInterrupt(in, cond); err != nil {
			return err
		}
		r.printf("configure %d %s\n", pin, cond)

	case "unsubscribe":
		if len(args) != 1 {
			return errors.New("usage: unsubscribe <pin>")
		}
		pin, err := r.pin(args[0])
		if err != nil {
			return err
		}
		t, ok := r.taps[pin]
		if !ok || t.sub == nil {
			return fmt.Errorf("pin %d is not subscribed", pin)
		}
		t.sub.Unsubscribe()
		t.sub = nil
		r.reg.Release(owner, pin)
		r.printf("unsubscribe %d\n", pin)

	case "expect":
		if len(args) != 2 {
			return errors.New("usage: expect <pin> <count>")
		}
		pin, err := r.pin(args[0])
		if err != nil {
			return err
		}
		want, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad count %q", args[1])
		}
		if got := r.Count(pin); got != want {
			r.failed++
			r.printf("FAIL expect %d: got %d events, want %d\n", pin, got, want)
		} else {
			r.printf("ok   expect %d: %d events\n", pin, got)
		}

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (r *Runner) subscribe(pin int, cond notify.Condition) error {
	in, err := r.reg.Claim(owner, pin)
	if err != nil {
		return err
	}
	t, ok := r.taps[pin]
	if !ok {
		t = &tap{}
		r.taps[pin] = t
	}
	sub, err := r.n.SubscribeWithCondition(in, cond, func() {
		t.count.Add(1)
		r.ring.Push(pin)
	})
	if err != nil {
		if t.sub == nil {
			r.reg.Release(owner, pin)
		}
		return err
	}
	t.sub = sub
	r.printf("subscribe %d %s\n", pin, cond)
	return nil
}

// flush prints the events queued by callbacks since the last step.
func (r *Runner) flush() {
	for {
		ev, ok := r.ring.Pop()
		if !ok {
			return
		}
		r.printf("  irq pin=%d seq=%d\n", ev.Pin, ev.Seq)
	}
}

func (r *Runner) pin(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad pin %q", s)
	}
	return n, nil
}

func (r *Runner) printf(format string, args ...any) {
	if r.out != nil {
		fmt.Fprintf(r.out, format, args...)
	}
}

// parseCondition treats an empty name as any_edge.
func parseCondition(s string) (notify.Condition, error) {
	if s == "" {
		return notify.AnyEdge, nil
	}
	return notify.ParseCondition(s)
}
