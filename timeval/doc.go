// Package timeval provides the totally ordered scalar time type and closed
// interval primitives that the rest of this module is parametric over.
//
// Two concrete instantiations are provided: Int64 for discrete (integer)
// time domains, and Rational for dense (exact fractional) time domains.
// Every algorithm in sibling packages is written against the Time[T]
// constraint rather than against either concrete type, so a caller picks
// the instantiation once, at the Problem boundary, and it never leaks back
// out as a choice the algorithms need to know about.
package timeval
