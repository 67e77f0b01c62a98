// Package oracle defines the interface between this core and the
// external schedulability state-space explorer. The core never
// reimplements the explorer; it only consumes the event stream an Agent
// receives while the explorer traverses the dispatch state space.
package oracle
