package model

import "github.com/samber/lo"

// Maximum amount of subjects that can be seated in parallel
const activeSlots = 2

// pairingEngine hands out students of at most two subjects at a time. Subjects are activated in the order they were given, each one once its predecessors run out of students
type pairingEngine interface {
	// Checks whether any subject (active or waiting) still has students to seat
	HasStudents() bool
	// Returns the names of the active subjects in activation order
	SnapshotSubjectNames() []string
	// Consumes the next student of the given subject, provided the subject is active and not exhausted
	PopForSubject(name string) (SeatEntry, bool)
}

type subjectCursor struct {
	name  string
	rolls []string
	index int // Next roll to hand out
}

func (cursor *subjectCursor) hasNext() bool {
	return cursor.index < len(cursor.rolls)
}

func (cursor *subjectCursor) pop() string {
	roll := cursor.rolls[cursor.index]
	cursor.index++
	return roll
}

type pairingEngineImplementation struct {
	waiting []*subjectCursor
	active  [activeSlots]*subjectCursor
	actives int // Occupied prefix of active
}

func newPairingEngine(subjects []SubjectData) pairingEngine {
	engine := &pairingEngineImplementation{
		waiting: lo.Map(subjects, func(subject SubjectData, _ int) *subjectCursor {
			return &subjectCursor{name: subject.Name, rolls: subject.Rolls}
		}),
	}
	engine.refresh()
	return engine
}

func (engine *pairingEngineImplementation) HasStudents() bool {
	return lo.SomeBy(engine.active[:engine.actives], (*subjectCursor).hasNext) ||
		lo.SomeBy(engine.waiting, (*subjectCursor).hasNext)
}

func (engine *pairingEngineImplementation) SnapshotSubjectNames() []string {
	engine.refresh()
	return lo.Map(engine.active[:engine.actives], func(cursor *subjectCursor, _ int) string { return cursor.name })
}

func (engine *pairingEngineImplementation) PopForSubject(name string) (SeatEntry, bool) {
	engine.refresh()
	cursor, ok := lo.Find(engine.active[:engine.actives], func(cursor *subjectCursor) bool {
		return cursor.name == name && cursor.hasNext()
	})
	if !ok {
		return SeatEntry{}, false
	}
	return SeatEntry{Subject: cursor.name, RollNo: cursor.pop()}, true
}

// Drops exhausted active cursors (keeping the survivors' activation order) and admits waiting cursors until every slot is taken or the queue runs dry
func (engine *pairingEngineImplementation) refresh() {
	kept := 0
	for _, cursor := range engine.active[:engine.actives] {
		if cursor.hasNext() {
			engine.active[kept] = cursor
			kept++
		}
	}
	for i := kept; i < engine.actives; i++ {
		engine.active[i] = nil
	}
	engine.actives = kept

	for engine.actives < activeSlots && len(engine.waiting) > 0 {
		next := engine.waiting[0]
		engine.waiting[0] = nil
		engine.waiting = engine.waiting[1:]
		// Exhausted subjects never take a slot
		if !next.hasNext() {
			continue
		}
		engine.active[engine.actives] = next
		engine.actives++
	}
}
