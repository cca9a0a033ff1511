package sheet

import (
	"path/filepath"
	"testing"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Writes rows into the first sheet of a new workbook and returns its path
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow("Sheet1", cellName, &row))
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, file.SaveAs(path))
	return path
}

func TestLoadRooms(t *testing.T) {
	t.Run("Columns in any order", func(t *testing.T) {
		//** Arrange
		path := writeWorkbook(t, [][]any{
			{"Columns", " Room No ", "Rows"},
			{4, "LHC104", 3},
			{},
			{2, " LHC105 ", 5},
		})

		//** Act
		rooms, err := LoadRooms(path)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []model.Room{
			{RoomNo: "LHC104", Rows: 3, Columns: 4},
			{RoomNo: "LHC105", Rows: 5, Columns: 2},
		}, rooms)
	})

	t.Run("Missing header", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{{"Room No", "Rows"}, {"LHC104", 3}})

		_, err := LoadRooms(path)

		assert.ErrorContains(t, err, "Room No, Rows, Columns")
	})

	t.Run("Non-numeric dimension", func(t *testing.T) {
		path := writeWorkbook(t, [][]any{{"Room No", "Rows", "Columns"}, {"LHC104", "three", 4}})

		_, err := LoadRooms(path)

		assert.ErrorContains(t, err, "row 2")
	})

	t.Run("Missing workbook", func(t *testing.T) {
		_, err := LoadRooms(filepath.Join(t.TempDir(), "missing.xlsx"))

		assert.Error(t, err)
	})
}

func TestLoadSubject(t *testing.T) {
	//** Arrange
	path := writeWorkbook(t, [][]any{
		{"Name", "Roll No"},
		{"Ada", "CS01"},
		{"Alan", ""},
		{"Grace", 1042},
		{"Edsger", " CS03 "},
	})

	//** Act
	subject, err := LoadSubject(" Computing ", path)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, model.SubjectData{Name: "Computing", Rolls: []string{"CS01", "1042", "CS03"}}, subject)
}

func TestWriteAllocations(t *testing.T) {
	//** Arrange
	rooms := []model.Room{{RoomNo: "R1", Rows: 2, Columns: 2}, {RoomNo: "R2", Rows: 1, Columns: 1}}
	subjects := []model.SubjectData{
		{Name: "Math", Rolls: []string{"M1", "M2"}},
		{Name: "Physics", Rolls: []string{"P1"}},
	}
	allocations, err := model.NewAllocator(nil).Allocate(rooms, subjects, 2, model.ColumnAlternating)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out", "Exam_Seating.xlsx")

	//** Act
	err = WriteAllocations(allocations, path)

	//** Assert
	require.NoError(t, err)
	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"R1", "R2"}, file.GetSheetList())

	first, err := file.GetCellValue("R1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Math: M1\nPhysics: P1", first)

	second, err := file.GetCellValue("R1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Math: M2", second)

	empty, err := file.GetCellValue("R2", "A1")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "LHC104", SheetName("LHC104"))
	assert.Len(t, []rune(SheetName("Main Building Lecture Hall Complex 104")), 31)
}

func TestWriteAllocationsRejectsCollidingSheetNames(t *testing.T) {
	allocations := []model.RoomAllocation{
		{RoomNo: "Main Building Lecture Hall Complex A", Rows: 1, Columns: 1, Grid: [][][]model.SeatEntry{{{}}}},
		{RoomNo: "Main Building Lecture Hall Complex B", Rows: 1, Columns: 1, Grid: [][][]model.SeatEntry{{{}}}},
	}

	err := WriteAllocations(allocations, filepath.Join(t.TempDir(), "out.xlsx"))

	assert.ErrorContains(t, err, "collide")
}

func TestWriteAllocationsRejectsSheetNamesDifferingInCase(t *testing.T) {
	allocations := []model.RoomAllocation{
		{RoomNo: "R1", Rows: 1, Columns: 1, Grid: [][][]model.SeatEntry{{{}}}},
		{RoomNo: "r1", Rows: 1, Columns: 1, Grid: [][][]model.SeatEntry{{{}}}},
	}

	err := WriteAllocations(allocations, filepath.Join(t.TempDir(), "out.xlsx"))

	assert.ErrorContains(t, err, "collide")
}

func TestWriteAllocationsKeepsRoomNamedLikeDefaultSheet(t *testing.T) {
	//** Arrange
	rooms := []model.Room{{RoomNo: "R2", Rows: 1, Columns: 1}, {RoomNo: "sheet1", Rows: 1, Columns: 1}}
	subjects := []model.SubjectData{{Name: "Math", Rolls: []string{"M1", "M2"}}}
	allocations, err := model.NewAllocator(nil).Allocate(rooms, subjects, 1, model.ColumnAlternating)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "Exam_Seating.xlsx")

	//** Act
	err = WriteAllocations(allocations, path)

	//** Assert
	require.NoError(t, err)
	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"R2", "sheet1"}, file.GetSheetList())

	first, err := file.GetCellValue("R2", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Math: M1", first)

	second, err := file.GetCellValue("sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Math: M2", second)
}
