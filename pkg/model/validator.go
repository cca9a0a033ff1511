package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Maximum amount of duplicate roll numbers reported by a DuplicateRollNumbers error
const maxReportedRolls = 10

type Validator interface {
	// Checks rooms, subjects and seats-per-bench in that order and returns the first violation found as an *AllocationError
	Validate(rooms []Room, subjects []SubjectData, seatsPerBench int) error
}

func NewValidator() Validator {
	return &validatorImplementation{}
}

type validatorImplementation struct{}

func (validator *validatorImplementation) Validate(rooms []Room, subjects []SubjectData, seatsPerBench int) error {
	if err := validateRooms(rooms); err != nil {
		return err
	}
	if err := validateSubjects(subjects); err != nil {
		return err
	}
	return validateSeatsPerBench(seatsPerBench)
}

func validateRooms(rooms []Room) error {
	if len(rooms) == 0 {
		return newAllocationError(NoRooms, "at least one room must be provided")
	}

	roomNumbers := lo.Map(rooms, func(room Room, _ int) string { return room.RoomNo })
	if duplicates := lo.FindDuplicates(roomNumbers); len(duplicates) > 0 {
		return newAllocationError(DuplicateRoomNumbers, fmt.Sprintf("duplicate room numbers found: %v", strings.Join(duplicates, ", ")))
	}

	if room, ok := lo.Find(rooms, func(room Room) bool { return room.Rows <= 0 || room.Columns <= 0 }); ok {
		return newAllocationError(InvalidRoomDimensions, fmt.Sprintf("invalid room dimensions for room %v: %vx%v", room.RoomNo, room.Rows, room.Columns))
	}
	return nil
}

func validateSubjects(subjects []SubjectData) error {
	if len(subjects) == 0 {
		return newAllocationError(NoSubjects, "at least one subject must be provided")
	}

	names := lo.Map(subjects, func(subject SubjectData, _ int) string {
		return strings.ToLower(strings.TrimSpace(subject.Name))
	})
	if len(lo.FindDuplicates(names)) > 0 {
		return newAllocationError(DuplicateSubjectNames, "duplicate subject uploads detected")
	}

	if subject, ok := lo.Find(subjects, func(subject SubjectData) bool { return len(subject.Rolls) == 0 }); ok {
		return newAllocationError(EmptySubjectRollList, fmt.Sprintf("subject \"%v\" has no roll numbers", subject.Name))
	}

	rolls := lo.FlatMap(subjects, func(subject SubjectData, _ int) []string { return subject.Rolls })
	if duplicates := lo.FindDuplicates(rolls); len(duplicates) > 0 {
		reported := duplicates[:min(len(duplicates), maxReportedRolls)]
		return newAllocationError(DuplicateRollNumbers, fmt.Sprintf("duplicate roll numbers found: %v", strings.Join(reported, ", ")))
	}
	return nil
}

func validateSeatsPerBench(seatsPerBench int) error {
	if seatsPerBench <= 0 {
		return newAllocationError(InvalidSeatsPerBench, fmt.Sprintf("seats per bench must be greater than zero: %v", seatsPerBench))
	}
	return nil
}
