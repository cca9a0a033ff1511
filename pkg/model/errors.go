package model

import "errors"

// ErrorKind tells which request-level check rejected an allocation
type ErrorKind int

const (
	NoRooms ErrorKind = iota
	DuplicateRoomNumbers
	InvalidRoomDimensions
	NoSubjects
	DuplicateSubjectNames
	EmptySubjectRollList
	DuplicateRollNumbers
	InvalidSeatsPerBench
	InsufficientCapacity
	UnsupportedMode
)

var errorKinds = map[ErrorKind]string{
	NoRooms:               "NoRooms",
	DuplicateRoomNumbers:  "DuplicateRoomNumbers",
	InvalidRoomDimensions: "InvalidRoomDimensions",
	NoSubjects:            "NoSubjects",
	DuplicateSubjectNames: "DuplicateSubjectNames",
	EmptySubjectRollList:  "EmptySubjectRollList",
	DuplicateRollNumbers:  "DuplicateRollNumbers",
	InvalidSeatsPerBench:  "InvalidSeatsPerBench",
	InsufficientCapacity:  "InsufficientCapacity",
	UnsupportedMode:       "UnsupportedMode",
}

func (kind ErrorKind) String() string {
	if name, ok := errorKinds[kind]; ok {
		return name
	}
	return "Unknown"
}

// AllocationError is a request-level failure raised before any seat is assigned.
// Capacity and Students are only meaningful for InsufficientCapacity.
type AllocationError struct {
	Kind     ErrorKind
	Message  string
	Capacity int
	Students int
}

func (err *AllocationError) Error() string {
	return err.Message
}

func newAllocationError(kind ErrorKind, message string) *AllocationError {
	return &AllocationError{Kind: kind, Message: message}
}

// KindOf returns the kind of the first *AllocationError found in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var allocationErr *AllocationError
	if errors.As(err, &allocationErr) {
		return allocationErr.Kind, true
	}
	return 0, false
}
