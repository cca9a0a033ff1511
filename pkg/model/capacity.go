package model

import (
	"fmt"

	"github.com/samber/lo"
)

func RoomCapacity(room Room, seatsPerBench int) int {
	return room.Rows * room.Columns * seatsPerBench
}

func TotalCapacity(rooms []Room, seatsPerBench int) int {
	return lo.SumBy(rooms, func(room Room) int { return RoomCapacity(room, seatsPerBench) })
}

func TotalStudents(subjects []SubjectData) int {
	return lo.SumBy(subjects, func(subject SubjectData) int { return len(subject.Rolls) })
}

// ValidateCapacity fails with InsufficientCapacity when the rooms cannot seat every student
func ValidateCapacity(rooms []Room, subjects []SubjectData, seatsPerBench int) error {
	capacity := TotalCapacity(rooms, seatsPerBench)
	students := TotalStudents(subjects)
	if capacity < students {
		return &AllocationError{
			Kind:     InsufficientCapacity,
			Message:  fmt.Sprintf("insufficient capacity: capacity=%d, students=%d", capacity, students),
			Capacity: capacity,
			Students: students,
		}
	}
	return nil
}
