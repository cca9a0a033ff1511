package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Allocator interface {
	Allocate(
		rooms []Room,
		subjects []SubjectData,
		seatsPerBench int,
		mode Mode,
	) ([]RoomAllocation, error)

	Verify(
		allocations []RoomAllocation,
		rooms []Room,
		subjects []SubjectData,
		seatsPerBench int,
	) bool
}

type allocatorImplementation struct {
	validator Validator
	logger    *zap.Logger
}

func NewAllocator(logger *zap.Logger) Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &allocatorImplementation{
		validator: NewValidator(),
		logger:    logger,
	}
}

func (allocator *allocatorImplementation) Allocate(rooms []Room, subjects []SubjectData, seatsPerBench int, mode Mode) ([]RoomAllocation, error) {
	//** Check input
	if !mode.valid() {
		return nil, newAllocationError(UnsupportedMode, fmt.Sprintf("unsupported allocation mode: %v", mode))
	}
	if err := allocator.validator.Validate(rooms, subjects, seatsPerBench); err != nil {
		return nil, err
	}
	if err := ValidateCapacity(rooms, subjects, seatsPerBench); err != nil {
		return nil, err
	}

	//** Fill rooms
	pairing := newPairingEngine(subjects)
	allocations := make([]RoomAllocation, 0, len(rooms))
	totalSeated := 0

	for _, room := range rooms {
		grid := make([][][]SeatEntry, room.Rows)
		for row := range grid {
			grid[row] = make([][]SeatEntry, room.Columns)
			for col := range grid[row] {
				grid[row][col] = []SeatEntry{}
			}
		}

		seated := fillRoom(grid, pairing, seatsPerBench, mode)
		totalSeated += seated
		allocator.logger.Debug("room filled",
			zap.String("room", room.RoomNo),
			zap.Int("seated", seated),
			zap.Int("capacity", RoomCapacity(room, seatsPerBench)),
		)

		allocations = append(allocations, RoomAllocation{
			RoomNo:  room.RoomNo,
			Rows:    room.Rows,
			Columns: room.Columns,
			Grid:    grid,
		})
	}

	allocator.logger.Info("allocation completed",
		zap.Stringer("mode", mode),
		zap.Int("rooms", len(rooms)),
		zap.Int("students", TotalStudents(subjects)),
		zap.Int("capacity", TotalCapacity(rooms, seatsPerBench)),
	)
	// A bench never holds more than the active subjects, so wide benches can run out before the students do
	if students := TotalStudents(subjects); totalSeated < students {
		allocator.logger.Warn("students left unseated",
			zap.Int("seated", totalSeated),
			zap.Int("unseated", students-totalSeated),
		)
	}
	return allocations, nil
}

// Fills grid in row-major order and returns the amount of students seated. Filling stops as soon as every subject is exhausted
func fillRoom(grid [][][]SeatEntry, pairing pairingEngine, seatsPerBench int, mode Mode) int {
	seated := 0
	for row := range grid {
		for col := range grid[row] {
			if !pairing.HasStudents() {
				return seated
			}

			names := pairing.SnapshotSubjectNames()
			if len(names) == 0 {
				continue
			}

			order := subjectOrder(mode, names, row, col)
			benchCapacity := min(seatsPerBench, len(order))
			for _, name := range order[:benchCapacity] {
				// A miss means the subject ran out within this bench; the seat stays empty
				if seat, ok := pairing.PopForSubject(name); ok {
					grid[row][col] = append(grid[row][col], seat)
					seated++
				}
			}
		}
	}
	return seated
}

func (allocator *allocatorImplementation) Verify(allocations []RoomAllocation, rooms []Room, subjects []SubjectData, seatsPerBench int) bool {
	return verify(allocations, rooms, subjects, seatsPerBench)
}

func verify(allocations []RoomAllocation, rooms []Room, subjects []SubjectData, seatsPerBench int) bool {
	//** Check output shape
	if len(allocations) != len(rooms) {
		return false
	}
	for i, allocation := range allocations {
		room := rooms[i]
		if allocation.RoomNo != room.RoomNo || allocation.Rows != room.Rows || allocation.Columns != room.Columns || len(allocation.Grid) != room.Rows {
			return false
		}
		if lo.SomeBy(allocation.Grid, func(row [][]SeatEntry) bool { return len(row) != room.Columns }) {
			return false
		}
	}

	//** Collect seated rolls per subject in traversal order
	expected := lo.SliceToMap(subjects, func(subject SubjectData) (string, []string) {
		return subject.Name, subject.Rolls
	})
	seatedRolls := make(map[string][]string)
	for _, allocation := range allocations {
		for _, row := range allocation.Grid {
			for _, bench := range row {
				// Check that:
				// - The bench does not exceed its seats
				// - At most two subjects share the bench
				// - Every occupant belongs to a known subject
				if len(bench) > seatsPerBench ||
					len(lo.UniqBy(bench, func(seat SeatEntry) string { return seat.Subject })) > activeSlots ||
					lo.SomeBy(bench, func(seat SeatEntry) bool {
						_, ok := expected[seat.Subject]
						return !ok
					}) {
					return false
				}
				for _, seat := range bench {
					seatedRolls[seat.Subject] = append(seatedRolls[seat.Subject], seat.RollNo)
				}
			}
		}
	}

	//** Check conservation and per-subject order
	return lo.EveryBy(subjects, func(subject SubjectData) bool {
		return slices.Equal(seatedRolls[subject.Name], subject.Rolls)
	})
}

// Unseated lists, in upload order, the roll numbers that appear in no bench of allocations
func Unseated(allocations []RoomAllocation, subjects []SubjectData) []string {
	seated := make(map[SeatEntry]bool)
	for _, allocation := range allocations {
		for _, row := range allocation.Grid {
			for _, bench := range row {
				for _, seat := range bench {
					seated[seat] = true
				}
			}
		}
	}

	return lo.FlatMap(subjects, func(subject SubjectData, _ int) []string {
		return lo.Filter(subject.Rolls, func(roll string, _ int) bool {
			return !seated[SeatEntry{Subject: subject.Name, RollNo: roll}]
		})
	})
}
