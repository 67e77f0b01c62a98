package minimize

import (
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/knokko/sagrepair/problem"
	"github.com/knokko/sagrepair/timeval"
)

// OracleFunc answers whether p is schedulable; trial minimization treats
// it as an opaque oracle call, exactly as the reconfiguration manager
// does for the rating graph.
type OracleFunc[T timeval.Time[T]] func(p *problem.Problem[T]) (bool, error)

// TrialMinimizer repeatedly removes random batches of appended
// constraints and keeps the removal only if the oracle still reports the
// problem schedulable without them. Multiple workers probe concurrently
// under a single mutex guarding the shared Problem snapshot: each worker
// copies the current problem under the lock, runs the oracle without
// holding it, and commits only if the problem size it started from is
// still current.
type TrialMinimizer[T timeval.Time[T]] struct {
	oracle        OracleFunc[T]
	numWorkers    int
	deadCountdown int
}

// NewTrialMinimizer returns a minimizer that fans out numWorkers
// concurrent oracle probes (errgroup) and gives up after deadCountdown
// consecutive failed probes at the minimum batch size of 1.
func NewTrialMinimizer[T timeval.Time[T]](oracle OracleFunc[T], numWorkers, deadCountdown int) *TrialMinimizer[T] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if deadCountdown < 1 {
		deadCountdown = 1
	}
	return &TrialMinimizer[T]{oracle: oracle, numWorkers: numWorkers, deadCountdown: deadCountdown}
}

// trialState is the shared, mutex-guarded bookkeeping every worker reads
// and updates between oracle probes.
type trialState[T timeval.Time[T]] struct {
	mu            sync.Mutex
	p             *problem.Problem[T]
	originalCount int
	batchSize     int
	deadCount     int
	stopped       bool
}

// Minimize mutates p.Precedence in place, removing as many of the
// constraints appended after originalCount as the oracle will tolerate.
// It returns the number of constraints removed.
func (m *TrialMinimizer[T]) Minimize(p *problem.Problem[T], originalCount int, rng *rand.Rand) (int, error) {
	startLen := len(p.Precedence)
	state := &trialState[T]{p: p, originalCount: originalCount, batchSize: 1}

	group := new(errgroup.Group)
	for w := 0; w < m.numWorkers; w++ {
		workerRng := rand.New(rand.NewSource(rng.Int63()))
		group.Go(func() error {
			return m.runWorker(state, workerRng)
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	return startLen - len(p.Precedence), nil
}

func (m *TrialMinimizer[T]) runWorker(state *trialState[T], rng *rand.Rand) error {
	for {
		state.mu.Lock()
		if state.stopped {
			state.mu.Unlock()
			return nil
		}
		appendedLen := len(state.p.Precedence) - state.originalCount
		if appendedLen == 0 {
			state.stopped = true
			state.mu.Unlock()
			return nil
		}
		batch := state.batchSize
		if batch > appendedLen {
			batch = appendedLen
		}
		snapshot := append([]problem.PrecedenceConstraint[T]{}, state.p.Precedence...)
		jobs := state.p.Jobs
		aborts := state.p.Aborts
		numProcessors := state.p.NumProcessors
		state.mu.Unlock()

		removedIdx := chooseBatch(rng, appendedLen, batch)
		candidatePrecedence := removeIndices(snapshot, state.originalCount, removedIdx)

		candidate := &problem.Problem[T]{
			Jobs:          jobs,
			Precedence:    candidatePrecedence,
			Aborts:        aborts,
			NumProcessors: numProcessors,
		}
		ok, err := m.oracle(candidate)
		if err != nil {
			return err
		}

		state.mu.Lock()
		if len(state.p.Precedence)-state.originalCount != appendedLen {
			// Stale: another worker already committed a change. Discard
			// this trial's result and retry against the fresh snapshot.
			state.mu.Unlock()
			continue
		}
		if ok {
			state.p.Precedence = candidatePrecedence
			state.deadCount = 0
			newAppendedLen := len(candidatePrecedence) - state.originalCount
			state.batchSize *= 2
			if state.batchSize > newAppendedLen {
				state.batchSize = newAppendedLen
			}
			if state.batchSize < 1 {
				state.batchSize = 1
			}
			if newAppendedLen == 0 {
				state.stopped = true
			}
		} else {
			if state.batchSize > 1 {
				state.batchSize /= 2
			} else {
				state.deadCount++
				if state.deadCount >= m.deadCountdown {
					state.stopped = true
				}
			}
		}
		state.mu.Unlock()
	}
}

// chooseBatch returns up to batch distinct indices in [0, n) chosen
// uniformly at random, identifying which appended constraints to drop
// for this trial.
func chooseBatch(rng *rand.Rand, n, batch int) map[int]bool {
	if batch >= n {
		chosen := make(map[int]bool, n)
		for i := 0; i < n; i++ {
			chosen[i] = true
		}
		return chosen
	}
	chosen := make(map[int]bool, batch)
	for len(chosen) < batch {
		chosen[rng.Intn(n)] = true
	}
	return chosen
}

// removeIndices returns a copy of snapshot with the appended entries at
// the given (appended-relative) indices removed; the first originalCount
// entries are always preserved untouched.
func removeIndices[T timeval.Time[T]](
	snapshot []problem.PrecedenceConstraint[T], originalCount int, drop map[int]bool,
) []problem.PrecedenceConstraint[T] {
	kept := append([]problem.PrecedenceConstraint[T]{}, snapshot[:originalCount]...)
	for i, pc := range snapshot[originalCount:] {
		if !drop[i] {
			kept = append(kept, pc)
		}
	}
	return kept
}
