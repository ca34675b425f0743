package ordering

import "testing"

type nestedValue struct {
	inner Address
	label string
}

func (n nestedValue) EqualityComponents() []any {
	return []any{n.inner, n.label}
}

func TestAddressEquality(t *testing.T) {
	a := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	b := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	c := NewAddress("22 Elm St", "Seattle", "WA", "USA", "98101")

	if !ValueObjectsEqual(a, b) {
		t.Fatalf("identical addresses must be equal")
	}
	if ValueObjectsEqual(a, c) {
		t.Fatalf("different street must not be equal")
	}
}

func TestValueObjectsEqualNilHandling(t *testing.T) {
	a := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	if !ValueObjectsEqual(nil, nil) {
		t.Fatalf("nil/nil must be equal")
	}
	if ValueObjectsEqual(a, nil) || ValueObjectsEqual(nil, a) {
		t.Fatalf("mixed nil must not be equal")
	}
}

func TestValueObjectsEqualRejectsDifferentTypes(t *testing.T) {
	a := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	n := nestedValue{inner: a, label: "home"}
	if ValueObjectsEqual(a, n) {
		t.Fatalf("different dynamic types must not be equal")
	}
}

func TestValueObjectsEqualRecursesIntoNestedValues(t *testing.T) {
	a := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	b := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	if !ValueObjectsEqual(nestedValue{inner: a, label: "home"}, nestedValue{inner: b, label: "home"}) {
		t.Fatalf("nested equal values must be equal")
	}
	if ValueObjectsEqual(nestedValue{inner: a, label: "home"}, nestedValue{inner: b, label: "work"}) {
		t.Fatalf("nested values with different labels must not be equal")
	}
}

type listValue struct {
	tags []string
}

func (v listValue) EqualityComponents() []any {
	return []any{v.tags}
}

func TestValueObjectsEqualHandlesUncomparableComponents(t *testing.T) {
	a := listValue{tags: []string{"gift", "rush"}}
	b := listValue{tags: []string{"gift", "rush"}}
	c := listValue{tags: []string{"gift"}}

	if !ValueObjectsEqual(a, b) {
		t.Fatalf("identical slice components must be equal")
	}
	if ValueObjectsEqual(a, c) {
		t.Fatalf("different slice components must not be equal")
	}
	if ValueObjectHash(a) != ValueObjectHash(b) {
		t.Fatalf("equal slice-component values must share a hash")
	}
}

type taggedValue struct {
	code string
	note string
}

func (v taggedValue) EqualityComponents() []any {
	return []any{v.code}
}

func TestValueObjectsEqualIgnoresNonComponentFields(t *testing.T) {
	a := taggedValue{code: "A1", note: "first"}
	b := taggedValue{code: "A1", note: "second"}
	if !ValueObjectsEqual(a, b) {
		t.Fatalf("fields outside the equality components must not affect equality")
	}
	if ValueObjectHash(a) != ValueObjectHash(b) {
		t.Fatalf("fields outside the equality components must not affect the hash")
	}
}

func TestValueObjectHashConsistentWithEquality(t *testing.T) {
	a := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	b := NewAddress("21 Elm St", "Seattle", "WA", "USA", "98101")
	c := NewAddress("22 Elm St", "Seattle", "WA", "USA", "98101")

	if ValueObjectHash(a) != ValueObjectHash(b) {
		t.Fatalf("equal values must share a hash")
	}
	if ValueObjectHash(a) == ValueObjectHash(c) {
		t.Fatalf("hash collision between distinct addresses")
	}
	if ValueObjectHash(nil) != ValueObjectHash(nil) {
		t.Fatalf("nil hash must be stable")
	}
}
