package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinnotify-go/errcode"
)

func load(t *testing.T, doc string) *Scenario {
	t.Helper()
	sc, err := LoadScenario(strings.NewReader(doc))
	require.NoError(t, err)
	return sc
}

func TestLoadScenario(t *testing.T) {
	sc := load(t, `
subscriptions:
  - pin: 3
    condition: rising-edge
script:
  - level 3 high
`)
	assert.Equal(t, "host", sc.Board)
	require.Len(t, sc.Subscriptions, 1)
	assert.Equal(t, Subscription{Pin: 3, Condition: "rising-edge"}, sc.Subscriptions[0])
	assert.Equal(t, []string{"level 3 high"}, sc.Script)

	_, err := LoadScenario(strings.NewReader("bogus: 1\n"))
	assert.Error(t, err)
	_, err = LoadScenario(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRunButtonScenarioFile(t *testing.T) {
	sc, err := LoadScenarioFile("testdata/button.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	r, err := NewRunner(sc.Board, &out, nil)
	require.NoError(t, err)
	require.NoError(t, r.Run(sc), out.String())
	assert.Zero(t, r.Failed())
	assert.EqualValues(t, 3, r.Count(14))
	assert.EqualValues(t, 2, r.Count(15))
	assert.False(t, r.Controller().Registered(15), "run tears down what is left")
	assert.Contains(t, out.String(), "ok   expect 14: 3 events")
	assert.Contains(t, out.String(), "level 14 low delivered=true\n  irq pin=14 seq=1\n")
}

func TestFailedExpectationIsReported(t *testing.T) {
	sc := load(t, `
subscriptions:
  - pin: 1
script:
  - level 1 high
  - expect 1 5
  - expect 1 1
`)
	var out bytes.Buffer
	r, err := NewRunner(sc.Board, &out, nil)
	require.NoError(t, err)
	err = r.Run(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 expectation(s) failed")
	assert.Equal(t, 1, r.Failed())
	assert.Contains(t, out.String(), "FAIL expect 1: got 1 events, want 5")
}

func TestScriptErrorsAbort(t *testing.T) {
	cases := map[string]string{
		"unknown command":      "jump 1",
		"bad pin":              "fire x",
		"bad level":            "level 1 sideways",
		"bad condition":        "configure 1 sometimes",
		"not subscribed":       "unsubscribe 9",
		"missing count":        "expect 1",
		"unterminated quoting": `fire "1`,
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewRunner("host", nil, nil)
			require.NoError(t, err)
			err = r.Run(&Scenario{Board: "host", Script: []string{line}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "script line 1")
		})
	}
}

func TestCommentsAndBlankLinesAreIgnored(t *testing.T) {
	r, err := NewRunner("host", nil, nil)
	require.NoError(t, err)
	require.NoError(t, r.Exec(""))
	require.NoError(t, r.Exec("   "))
	require.NoError(t, r.Exec("# nothing to do"))
}

func TestBoardLimitsPins(t *testing.T) {
	_, err := NewRunner("abacus", nil, nil)
	assert.Error(t, err)

	r, err := NewRunner("pico", nil, nil)
	require.NoError(t, err)
	err = r.Run(&Scenario{Board: "pico", Subscriptions: []Subscription{{Pin: 29}}})
	assert.ErrorIs(t, err, errcode.UnknownPin)
}

func TestSubscribeTwiceIsPinInUse(t *testing.T) {
	r, err := NewRunner("host", nil, nil)
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, r.Exec("subscribe 2 high-level"))
	assert.ErrorIs(t, r.Exec("subscribe 2"), errcode.PinInUse)

	require.NoError(t, r.Exec("level 2 high"))
	require.NoError(t, r.Exec("fire 2"))
	assert.EqualValues(t, 2, r.Count(2))

	require.NoError(t, r.Exec("unsubscribe 2"))
	require.NoError(t, r.Exec("subscribe 2 low-level"))
	require.NoError(t, r.Exec("level 2 low"))
	assert.EqualValues(t, 3, r.Count(2), "counter carries across subscriptions")
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"conditions"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "any-edge\nrising-edge\nfalling-edge\nlow-level\nhigh-level\ndisabled\n", out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"run", "-f", "testdata/button.yaml"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "board=pico delivered=5 failed=0")
}
