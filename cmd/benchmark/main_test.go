package main

import (
	"testing"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildInput(t *testing.T) {
	scenario := ScenarioMetadata{Name: "tiny", Rooms: 3, Rows: 2, Columns: 4, Subjects: 2, StudentsPerSubject: 5}

	rooms, subjects := buildInput(scenario)

	assert.Len(t, rooms, 3)
	assert.Equal(t, model.Room{RoomNo: "R002", Rows: 2, Columns: 4}, rooms[2])
	assert.Len(t, subjects, 2)
	assert.Equal(t, "S001-00004", subjects[1].Rolls[4])
	assert.NoError(t, model.NewValidator().Validate(rooms, subjects, 1))
}

func TestMeasure(t *testing.T) {
	allocator := model.NewAllocator(nil)
	scenario := ScenarioMetadata{Name: "tiny", Rooms: 1, Rows: 2, Columns: 2, Subjects: 2, StudentsPerSubject: 3}

	_, result := measure(allocator, scenario, model.ZigZagAlternating, 2)
	assert.Equal(t, verified, result)

	_, result = measure(allocator, scenario, model.ColumnAlternating, 1)
	assert.Equal(t, rejected, result)
}

func TestToRecord(t *testing.T) {
	record := toRecord(BenchmarkResult{
		Scenario:      ScenarioMetadata{Name: "small", Rooms: 2, Rows: 5, Columns: 4, Subjects: 2, StudentsPerSubject: 30},
		Mode:          model.ZigZagAlternating,
		SeatsPerBench: 2,
		Duration:      1500,
		Result:        verified,
	})

	assert.Equal(t, []string{"small", "Zig-Zag Alternating", "2", "2", "5", "4", "2", "30", "1", "verified"}, record)
}
