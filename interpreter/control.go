package interpreter

import "jocks/value"

// Outcome of executing a statement. Every statement sequence checks it
// after each child and stops on anything but signalNormal.
type signalKind uint8

const (
	signalNormal signalKind = iota
	signalReturning
)

type signal struct {
	kind  signalKind
	value value.Value // Set when returning
}

var normal = signal{kind: signalNormal}

func returning(v value.Value) signal {
	return signal{kind: signalReturning, value: v}
}

func (s signal) isNormal() bool {
	return s.kind == signalNormal
}
