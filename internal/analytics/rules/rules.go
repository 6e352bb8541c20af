// Package rules evaluates ordered predicate tables.
//
// Two shapes are supported. An Adjustment table sums the trait effects of every
// rule whose predicate holds; a Branch table returns the outcome of the first
// branch whose predicate holds.
package rules

import "github.com/tlhtlh2211/datavis-project2/internal/core/domain"

// Adjustment adds Effect to the trait vector when When holds for the input.
type Adjustment[T any] struct {
	Name   string
	When   func(T) bool
	Effect domain.Traits
}

// Sum returns the total effect of all matching adjustments.
func Sum[T any](table []Adjustment[T], in T) domain.Traits {
	var total domain.Traits
	for _, r := range table {
		if r.When(in) {
			total = total.Add(r.Effect)
		}
	}
	return total
}

// Matched returns the names of the adjustments that fire for the input.
func Matched[T any](table []Adjustment[T], in T) []string {
	var names []string
	for _, r := range table {
		if r.When(in) {
			names = append(names, r.Name)
		}
	}
	return names
}

// Branch yields Then(in) when When holds.
type Branch[T, R any] struct {
	When func(T) bool
	Then func(T) R
}

// First evaluates branches in order and returns the first match, or otherwise(in).
func First[T, R any](branches []Branch[T, R], in T, otherwise func(T) R) R {
	for _, b := range branches {
		if b.When(in) {
			return b.Then(in)
		}
	}
	return otherwise(in)
}

// Const returns a Then function that ignores its input.
func Const[T, R any](v R) func(T) R {
	return func(T) R { return v }
}

// Between reports whether lo < x < hi.
func Between(x, lo, hi float64) bool { return x > lo && x < hi }

// Within reports whether lo <= x <= hi.
func Within(x, lo, hi float64) bool { return x >= lo && x <= hi }
