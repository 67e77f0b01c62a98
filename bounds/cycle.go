package bounds

import "github.com/knokko/sagrepair/problem"

// findCycle walks the precedence graph with an explicit (not recursive)
// DFS stack, each frame tracking which successor to visit next, and a
// recursion-stack marker per job. When a job already on the recursion
// stack is reached again, the stack segment from its first occurrence to
// the current top is the witness chain. Returns nil if the graph is
// acyclic.
//
// An explicit stack (rather than recursive calls) keeps the traversal safe
// for job sets with long chains, where a naive recursive DFS would risk
// deep call stacks.
func findCycle(successors [][]problem.JobIndex) []int {
	type frame struct {
		job  int
		next int
	}

	n := len(successors)
	seenBefore := make([]bool, n)

	for start := 0; start < n; start++ {
		if seenBefore[start] {
			continue
		}

		onStack := make([]bool, n)
		stack := []frame{{job: start, next: 0}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			seenBefore[top.job] = true

			if onStack[top.job] && top.next == 0 {
				chain := make([]int, 0, len(stack))
				started := false
				for _, f := range stack {
					if !started && f.job == top.job {
						started = true
					}
					if started {
						chain = append(chain, f.job)
					}
				}
				return chain
			}
			onStack[top.job] = true

			succs := successors[top.job]
			if top.next < len(succs) {
				next := int(succs[top.next])
				top.next++
				stack = append(stack, frame{job: next, next: 0})
			} else {
				onStack[top.job] = false
				stack = stack[:len(stack)-1]
			}
		}
	}

	return nil
}
