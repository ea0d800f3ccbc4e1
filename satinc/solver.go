package satinc

import (
	"fmt"
	"time"

	"github.com/boolabs/gla/encoder"
)

// Solver is an incremental CDCL solver over int32 variables. The
// clause database persists across Solve calls, which is what makes
// the encoder's lazy per-frame clause emission worthwhile; the trail
// and assignment are rebuilt fresh each call, same as re-running
// search against a growing clause set.
type Solver struct {
	clauses    []*clause
	origClause int // count of non-learned clauses, for NClauses()
	nVars      int32

	states   []varState // 1-indexed by Var; states[0] unused
	trail    []Lit
	trailLim []int

	lastCore []int

	stats Stats

	bmClauses int
	bmVars    int32
}

// New returns an empty solver, variable 0 reserved.
func New() *Solver {
	return &Solver{states: make([]varState, 1)}
}

func (s *Solver) NewVar() int32 {
	s.nVars++
	v := Var(s.nVars)
	for int(v) >= len(s.states) {
		s.states = append(s.states, varState{})
	}
	return int32(v)
}

func (s *Solver) NVars() int32 { return s.nVars }

func (s *Solver) NClauses() int { return s.origClause }

func (s *Solver) Stats() fmt.Stringer { return s.stats }

func toLit(l encoder.Lit) Lit { return MkLit(Var(l.Var), l.Neg) }

// AddClause appends an original clause, growing the variable count to
// cover any literal that names a variable beyond the current count
// (mirrors the original source's lazy per-gate variable allocation:
// clauses can reference variables the caller allocated via NewVar
// before calling AddClause, which is the normal encoder usage).
func (s *Solver) AddClause(lits []encoder.Lit) int {
	ls := make([]Lit, len(lits))
	for i, l := range lits {
		ls[i] = toLit(l)
		if Var(l.Var) > Var(s.nVars) {
			s.nVars = int32(l.Var)
		}
	}
	id := len(s.clauses)
	c := &clause{id: id, lits: ls, origins: map[int]bool{id: true}}
	s.clauses = append(s.clauses, c)
	s.origClause++
	return id
}

func (s *Solver) addLearned(lits []Lit, origins map[int]bool) *clause {
	id := len(s.clauses)
	c := &clause{id: id, lits: lits, learned: true, origins: origins}
	s.clauses = append(s.clauses, c)
	return c
}

// Bookmark records the current database size.
func (s *Solver) Bookmark() {
	s.bmClauses = len(s.clauses)
	s.bmVars = s.nVars
}

// Rollback discards every clause added since the last Bookmark. Solver
// variable numbering is NOT rewound (mirrors giaAbsGla.c's
// Gla_ManRollBack, which never resets nSatVars either): stale variable
// numbers above the bookmark simply go unreferenced by any surviving
// clause.
func (s *Solver) Rollback() {
	if s.bmClauses > len(s.clauses) {
		return
	}
	orig := 0
	for _, c := range s.clauses[:s.bmClauses] {
		if !c.learned {
			orig++
		}
	}
	s.clauses = s.clauses[:s.bmClauses]
	s.origClause = orig
}

func (s *Solver) ensureFreshAssignment() {
	for i := range s.states {
		s.states[i] = varState{}
	}
	s.trail = s.trail[:0]
	s.trailLim = s.trailLim[:0]
}

func (s *Solver) decisionLevel() int { return len(s.trailLim) }

func (s *Solver) litTrue(l Lit) bool {
	st := &s.states[l.Var()]
	return st.assigned && st.value != l.Sign()
}

func (s *Solver) litFalse(l Lit) bool {
	st := &s.states[l.Var()]
	return st.assigned && st.value == l.Sign()
}

func (s *Solver) assign(l Lit, reason *clause) {
	st := &s.states[l.Var()]
	st.assigned = true
	st.value = !l.Sign()
	st.level = s.decisionLevel()
	st.reason = reason
	s.trail = append(s.trail, l)
}

func (s *Solver) newDecisionLevel() { s.trailLim = append(s.trailLim, len(s.trail)) }

// backtrackTo unassigns every variable decided after level.
func (s *Solver) backtrackTo(level int) {
	if s.decisionLevel() <= level {
		return
	}
	from := s.trailLim[level]
	for i := len(s.trail) - 1; i >= from; i-- {
		s.states[s.trail[i].Var()] = varState{}
	}
	s.trail = s.trail[:from]
	s.trailLim = s.trailLim[:level]
}

// propagate rescans every clause to fixpoint, a plain unit-propagation
// loop rather than a watched-literal scheme — correctness over throughput,
// since this solver is never profiled against a real SAT benchmark.
func (s *Solver) propagate() *clause {
	changed := true
	for changed {
		changed = false
		for _, c := range s.clauses {
			satisfied := false
			unassignedCount := 0
			var lastUnassigned Lit
			for _, l := range c.lits {
				if s.litTrue(l) {
					satisfied = true
					break
				}
				if !s.litFalse(l) {
					unassignedCount++
					lastUnassigned = l
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				return c
			}
			if unassignedCount == 1 {
				s.assign(lastUnassigned, c)
				s.stats.Propagations++
				changed = true
			}
		}
	}
	return nil
}

// analyze performs first-UIP conflict-driven clause learning over
// int-indexed variables, with a chronological trail scan.
func (s *Solver) analyze(confl *clause) (learnt []Lit, btLevel int, origins map[int]bool) {
	level := s.decisionLevel()
	seen := make(map[Var]bool)
	origins = map[int]bool{}
	pathC := 0
	learnt = []Lit{0} // slot 0 reserved for the asserting literal

	addLit := func(l Lit) {
		v := l.Var()
		if seen[v] {
			return
		}
		seen[v] = true
		if s.states[v].level == level {
			pathC++
			return
		}
		if s.states[v].level > 0 {
			learnt = append(learnt, l.Neg())
		}
	}

	confl.mergeOriginsInto(origins)
	for _, l := range confl.lits {
		addLit(l)
	}

	idx := len(s.trail) - 1
	var p Lit
	for pathC > 0 {
		for idx >= 0 && !seen[s.trail[idx].Var()] {
			idx--
		}
		if idx < 0 {
			break
		}
		p = s.trail[idx]
		idx--
		seen[p.Var()] = false
		pathC--
		reason := s.states[p.Var()].reason
		if reason == nil {
			continue
		}
		reason.mergeOriginsInto(origins)
		for _, l := range reason.lits {
			if l.Var() == p.Var() {
				continue
			}
			addLit(l)
		}
	}

	learnt[0] = p.Neg()

	btLevel = 0
	for _, l := range learnt[1:] {
		if lv := s.states[l.Var()].level; lv > btLevel {
			btLevel = lv
		}
	}
	return learnt, btLevel, origins
}

// collectOrigins walks the implication graph backward from each
// variable named in lits, following reason clauses, and returns the
// transitive union of every original clause ID the current value of
// lits depends on. A decision literal (reason == nil — a free
// decision or an assumption) is an opaque foundation and contributes
// no origin of its own. Unlike analyze, this has no notion of decision
// level or first-UIP; it is for building a core from a set of
// literals directly, not from a clause being resolved during search.
func (s *Solver) collectOrigins(lits []Lit) map[int]bool {
	origins := map[int]bool{}
	seen := map[Var]bool{}
	queue := append([]Lit(nil), lits...)
	for len(queue) > 0 {
		l := queue[0]
		queue = queue[1:]
		v := l.Var()
		if seen[v] {
			continue
		}
		seen[v] = true
		reason := s.states[v].reason
		if reason == nil {
			continue
		}
		reason.mergeOriginsInto(origins)
		for _, rl := range reason.lits {
			if rl.Var() != v {
				queue = append(queue, rl)
			}
		}
	}
	return origins
}

func (s *Solver) setCoreFrom(origins map[int]bool) {
	core := make([]int, 0, len(origins))
	for id := range origins {
		core = append(core, id)
	}
	s.lastCore = core
}

// Solve runs the solver under the given assumptions. The clause
// database is untouched by the search; only the trail is rebuilt.
//
// Assumption handling follows MiniSat's approach: decisionLevel() is
// kept in lockstep with the assumptions slice (decisionLevel() == i
// means assumptions[0:i] are currently committed), so pending[i] is
// always re-examined as the next assumption to decide — including
// after a backtrack below level i. A conflict that would backtrack to
// or below the assumption region, or an assumption literal propagation
// has already falsified, is reported as UNSAT under assumptions
// (MiniSat's analyzeFinal) instead of being flipped and continued.
func (s *Solver) Solve(assumptions []encoder.Lit, conflictLimit int64, deadline time.Time) (encoder.Status, error) {
	s.ensureFreshAssignment()
	s.lastCore = nil

	pending := make([]Lit, len(assumptions))
	for i, a := range assumptions {
		pending[i] = toLit(a)
	}

	conflicts := int64(0)
	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return encoder.StatusUndef, nil
		}

		confl := s.propagate()
		if confl != nil {
			s.stats.Conflicts++
			conflicts++
			if s.decisionLevel() == 0 {
				origins := s.collectOrigins(confl.lits)
				confl.mergeOriginsInto(origins)
				s.setCoreFrom(origins)
				return encoder.StatusUNSAT, nil
			}
			if conflictLimit > 0 && conflicts > conflictLimit {
				return encoder.StatusUndef, nil
			}
			learnt, btLevel, origins := s.analyze(confl)
			if btLevel < len(pending) {
				s.setCoreFrom(origins)
				return encoder.StatusUNSAT, nil
			}
			s.backtrackTo(btLevel)
			lc := s.addLearned(learnt, origins)
			s.stats.Learned++
			s.assign(learnt[0], lc)
			continue
		}

		if s.decisionLevel() < len(pending) {
			l := pending[s.decisionLevel()]
			if s.litFalse(l) {
				s.setCoreFrom(s.collectOrigins([]Lit{l}))
				return encoder.StatusUNSAT, nil
			}
			s.newDecisionLevel()
			if !s.litTrue(l) {
				s.assign(l, nil)
				s.stats.Decisions++
			}
			continue
		}

		freeVar := Var(0)
		for v := Var(1); int(v) < len(s.states); v++ {
			if !s.states[v].assigned {
				freeVar = v
				break
			}
		}
		if freeVar == 0 {
			return encoder.StatusSAT, nil
		}
		s.newDecisionLevel()
		s.assign(MkLit(freeVar, false), nil)
		s.stats.Decisions++
	}
}

func (s *Solver) ProofCore() []int { return s.lastCore }

func (s *Solver) VarValue(v int32) bool {
	st := s.states[v]
	return st.assigned && st.value
}
