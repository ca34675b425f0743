package ordering

import (
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
)

// ValueObject is implemented by immutable domain values compared by
// structure instead of identity. EqualityComponents must return the same
// ordered sequence for any two instances that should be considered equal;
// fields excluded from the sequence do not participate in equality.
type ValueObject interface {
	EqualityComponents() []any
}

// ValueObjectsEqual reports structural equality between two value objects.
// Both nil is equal; mixed nil is not; different dynamic types are never
// equal; otherwise the component sequences are compared element by element
// in order, with nested value objects compared recursively.
func ValueObjectsEqual(a, b ValueObject) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	ac := a.EqualityComponents()
	bc := b.EqualityComponents()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !componentsEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func componentsEqual(x, y any) bool {
	if x == nil && y == nil {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	xv, xok := x.(ValueObject)
	yv, yok := y.(ValueObject)
	if xok && yok {
		return ValueObjectsEqual(xv, yv)
	}
	if xok != yok {
		return false
	}
	xt := reflect.TypeOf(x)
	if xt != reflect.TypeOf(y) {
		return false
	}
	// slices, maps and other uncomparable components fall back to deep equality
	if !xt.Comparable() {
		return reflect.DeepEqual(x, y)
	}
	return x == y
}

// ValueObjectHash folds the component sequence into a hash consistent with
// ValueObjectsEqual: equal value objects always share a hash.
func ValueObjectHash(vo ValueObject) uint64 {
	h := fnv.New64a()
	if vo == nil {
		return h.Sum64()
	}
	fmt.Fprintf(h, "%T", vo)
	writeComponents(h, vo.EqualityComponents())
	return h.Sum64()
}

func writeComponents(h io.Writer, components []any) {
	for _, c := range components {
		if nested, ok := c.(ValueObject); ok {
			fmt.Fprintf(h, "|%T{", nested)
			writeComponents(h, nested.EqualityComponents())
			fmt.Fprint(h, "}")
			continue
		}
		fmt.Fprintf(h, "|%v", c)
	}
}
