package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/samber/lo"
)

const (
	resultsFile = "benchmark_results.csv"
	repetitions = 5
)

type ResultType int

const (
	verified ResultType = iota
	unverified
	rejected
)

var resultTypes = map[ResultType]string{
	verified:   "verified",
	unverified: "unverified",
	rejected:   "rejected",
}

type ScenarioMetadata struct {
	Name               string
	Rooms              int
	Rows               int
	Columns            int
	Subjects           int
	StudentsPerSubject int
}

type BenchmarkResult struct {
	Scenario      ScenarioMetadata
	Mode          model.Mode
	SeatsPerBench int
	Duration      time.Duration // Mean over the repetitions
	Result        ResultType
}

func main() {
	scenarios := getScenarios()
	seats := []int{1, 2, 3}
	results := make([]BenchmarkResult, 0, len(scenarios)*len(model.Modes())*len(seats))

	allocator := model.NewAllocator(nil)
	for _, scenario := range scenarios {
		for _, mode := range model.Modes() {
			for _, seatsPerBench := range seats {
				fmt.Printf("Benchmarking scenario \"%v\" with mode \"%v\" and %v seats per bench\n", scenario.Name, mode, seatsPerBench)

				duration, result := measure(allocator, scenario, mode, seatsPerBench)
				results = append(results, BenchmarkResult{
					Scenario:      scenario,
					Mode:          mode,
					SeatsPerBench: seatsPerBench,
					Duration:      duration,
					Result:        result,
				})
			}
		}
	}

	toCsv(results)
}

func getScenarios() []ScenarioMetadata {
	return []ScenarioMetadata{
		{Name: "small", Rooms: 2, Rows: 5, Columns: 4, Subjects: 2, StudentsPerSubject: 30},
		{Name: "department", Rooms: 10, Rows: 8, Columns: 6, Subjects: 6, StudentsPerSubject: 120},
		{Name: "campus", Rooms: 60, Rows: 10, Columns: 8, Subjects: 25, StudentsPerSubject: 300},
		{Name: "many-subjects", Rooms: 40, Rows: 10, Columns: 10, Subjects: 400, StudentsPerSubject: 20},
	}
}

func buildInput(scenario ScenarioMetadata) ([]model.Room, []model.SubjectData) {
	rooms := lo.Times(scenario.Rooms, func(i int) model.Room {
		return model.Room{RoomNo: fmt.Sprintf("R%03d", i), Rows: scenario.Rows, Columns: scenario.Columns}
	})
	subjects := lo.Times(scenario.Subjects, func(i int) model.SubjectData {
		return model.SubjectData{
			Name: fmt.Sprintf("Subject%03d", i),
			Rolls: lo.Times(scenario.StudentsPerSubject, func(j int) string {
				return fmt.Sprintf("S%03d-%05d", i, j)
			}),
		}
	})
	return rooms, subjects
}

func measure(allocator model.Allocator, scenario ScenarioMetadata, mode model.Mode, seatsPerBench int) (time.Duration, ResultType) {
	rooms, subjects := buildInput(scenario)

	var total time.Duration
	var allocations []model.RoomAllocation
	for range repetitions {
		start := time.Now()
		var err error
		allocations, err = allocator.Allocate(rooms, subjects, seatsPerBench, mode)
		total += time.Since(start)

		if err != nil {
			return 0, rejected
		}
	}

	if !allocator.Verify(allocations, rooms, subjects, seatsPerBench) {
		return total / repetitions, unverified
	}
	return total / repetitions, verified
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Scenario", "Mode", "Seats Per Bench", "Rooms", "Rows", "Columns", "Subjects", "Students Per Subject", "Duration(us)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		if err := writer.Write(toRecord(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Scenario.Name,
		result.Mode.String(),
		fmt.Sprintf("%d", result.SeatsPerBench),
		fmt.Sprintf("%d", result.Scenario.Rooms),
		fmt.Sprintf("%d", result.Scenario.Rows),
		fmt.Sprintf("%d", result.Scenario.Columns),
		fmt.Sprintf("%d", result.Scenario.Subjects),
		fmt.Sprintf("%d", result.Scenario.StudentsPerSubject),
		fmt.Sprintf("%d", result.Duration.Microseconds()),
		resultTypes[result.Result],
	}
}
