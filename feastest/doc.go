// Package feastest implements the necessary (not sufficient) feasibility
// tests run after simple bounds are computed and before the expensive
// schedulability oracle is invoked: the load test, the interval test, and
// the packing test the interval test relies on. A positive result from
// either test is a proof of infeasibility; a negative result means
// nothing more than "this cheap test found no proof."
package feastest
