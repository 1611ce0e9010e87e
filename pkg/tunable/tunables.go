// Package tunable holds parameters that can be adjusted while a control
// loop is running.  Values are stored in thousandths so fractional PID gains
// can be stepped without floats in the atomics.
package tunable

import (
	"fmt"
	"sync/atomic"
)

type Tunable struct {
	Name string
	// Value in thousandths of the parameter's unit.
	Value int64
	// Step applied by Up/Down, in thousandths.
	Step int64
}

func (t *Tunable) Add(deltaThousandths int) {
	newV := atomic.AddInt64(&t.Value, int64(deltaThousandths))
	fmt.Printf("Tunable %s = %.3f\n", t.Name, float64(newV)/1000)
}

func (t *Tunable) Up() {
	t.Add(int(t.Step))
}

func (t *Tunable) Down() {
	t.Add(int(-t.Step))
}

// Get returns the parameter's value in its own unit.
func (t *Tunable) Get() float64 {
	return float64(atomic.LoadInt64(&t.Value)) / 1000
}

type Tunables struct {
	All      []*Tunable
	selected int
}

// Create registers a tunable.  value and step are in the parameter's own
// unit.
func (t *Tunables) Create(name string, value, step float64) *Tunable {
	newTunable := &Tunable{
		Name:  name,
		Value: int64(value * 1000),
		Step:  int64(step * 1000),
	}
	t.All = append(t.All, newTunable)
	return newTunable
}

func (t *Tunables) SelectNext() {
	t.selected++
	if t.selected >= len(t.All) {
		t.selected = 0
	}
	fmt.Printf("Tunable %s selected, value: %.3f\n", t.Current().Name, t.Current().Get())
}

func (t *Tunables) SelectPrev() {
	t.selected--
	if t.selected < 0 {
		t.selected = len(t.All) - 1
	}
	fmt.Printf("Tunable %s selected, value: %.3f\n", t.Current().Name, t.Current().Get())
}

func (t *Tunables) Current() *Tunable {
	return t.All[t.selected]
}
