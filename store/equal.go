package store

import (
	"math"
	"math/cmplx"
	"reflect"
)

// SafeEqual is the default change test used by every store.
//
// Values are equal when they are identical, or when both are NaN. Comparable
// values use ==, so two pointers to the same object are equal even if the
// object was mutated in between. Slices and maps are equal only when they
// share the same backing storage. Functions and other non-comparable values
// are never equal, so setting one always notifies.
func SafeEqual[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if isNaN(av) {
		return isNaN(bv)
	}
	if isNaN(bv) {
		return false
	}
	return identical(av, bv)
}

func isNaN(v any) bool {
	switch x := v.(type) {
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case int, int64, string, bool, nil:
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return cmplx.IsNaN(rv.Complex())
	default:
		return false
	}
}

func identical(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return ra.IsValid() == rb.IsValid()
	}
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Comparable() {
		return a == b
	}

	switch ra.Kind() {
	case reflect.Slice:
		return ra.UnsafePointer() == rb.UnsafePointer() &&
			ra.Len() == rb.Len() &&
			ra.Cap() == rb.Cap()
	case reflect.Map:
		return ra.UnsafePointer() == rb.UnsafePointer()
	default:
		return false
	}
}
