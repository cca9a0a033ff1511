package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type Room struct {
	RoomNo  string `mapstructure:"roomNo" json:"roomNo"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

type SubjectData struct {
	Name  string   `json:"name"`
	Rolls []string `json:"rolls"`
}

type SeatEntry struct {
	Subject string `json:"subject"`
	RollNo  string `json:"rollNo"`
}

type RoomAllocation struct {
	RoomNo  string          `json:"roomNo"`
	Rows    int             `json:"rows"`
	Columns int             `json:"columns"`
	Grid    [][][]SeatEntry `json:"grid"` // Grid[row][column] holds the bench's occupants in seating order
}

type RawAllocationInput struct {
	Rooms         []Room
	Subjects      []SubjectData
	SeatsPerBench *int `mapstructure:"seatsPerBench"` // Nil when the request leaves it out
	Mode          string
}

type AllocationInput struct {
	Rooms         []Room
	Subjects      []SubjectData
	SeatsPerBench int
	Mode          Mode
}

// InputDefaults fills in what a request leaves out
type InputDefaults struct {
	SeatsPerBench int
	Mode          Mode
}

const DefaultSeatsPerBench = 2

func DefaultInputDefaults() InputDefaults {
	return InputDefaults{SeatsPerBench: DefaultSeatsPerBench, Mode: DefaultMode}
}

func InputFromJson(file string, defaults InputDefaults) (AllocationInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return AllocationInput{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return AllocationInput{}, fmt.Errorf("cannot parse input file: %w", err)
	}

	// Roll numbers are often plain integers in exported sheets, hence the weakly typed decoding
	var rawInput RawAllocationInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rawInput,
	})
	if err != nil {
		return AllocationInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return AllocationInput{}, fmt.Errorf("cannot decode input file: %w", err)
	}
	return ProcessRawInput(rawInput, defaults)
}

// ProcessRawInput trims the raw request and applies defaults to the absent seats-per-bench and mode. An explicit seats-per-bench is kept as is, even when invalid
func ProcessRawInput(rawInput RawAllocationInput, defaults InputDefaults) (AllocationInput, error) {
	mode := defaults.Mode
	if strings.TrimSpace(rawInput.Mode) != "" {
		parsed, err := ParseMode(rawInput.Mode)
		if err != nil {
			return AllocationInput{}, err
		}
		mode = parsed
	}

	seatsPerBench := defaults.SeatsPerBench
	if rawInput.SeatsPerBench != nil {
		seatsPerBench = *rawInput.SeatsPerBench
	}

	rooms := lo.Map(rawInput.Rooms, func(room Room, _ int) Room {
		return Room{RoomNo: strings.TrimSpace(room.RoomNo), Rows: room.Rows, Columns: room.Columns}
	})

	subjects := lo.Map(rawInput.Subjects, func(subject SubjectData, _ int) SubjectData {
		return SubjectData{Name: strings.TrimSpace(subject.Name), Rolls: CleanRolls(subject.Rolls)}
	})

	return AllocationInput{
		Rooms:         rooms,
		Subjects:      subjects,
		SeatsPerBench: seatsPerBench,
		Mode:          mode,
	}, nil
}

// CleanRolls trims every roll number and drops the ones left empty, keeping the original order
func CleanRolls(rolls []string) []string {
	return lo.FilterMap(rolls, func(roll string, _ int) (string, bool) {
		roll = strings.TrimSpace(roll)
		return roll, roll != ""
	})
}

// BenchLabel renders a bench as "subject: roll" lines, or placeholder when nobody sits there
func BenchLabel(bench []SeatEntry, placeholder string) string {
	if len(bench) == 0 {
		return placeholder
	}
	return strings.Join(lo.Map(bench, func(seat SeatEntry, _ int) string {
		return fmt.Sprintf("%v: %v", seat.Subject, seat.RollNo)
	}), "\n")
}
