package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

// Longest sheet name accepted by spreadsheet applications
const maxSheetName = 31

const defaultSheet = "Sheet1"

// SheetName is the name of the sheet holding a room's grid
func SheetName(roomNo string) string {
	runes := []rune(roomNo)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return string(runes)
}

// WriteAllocations stores one sheet per room, each bench in its grid cell and empty benches left blank
func WriteAllocations(allocations []model.RoomAllocation, path string) error {
	sheetNames := lo.Map(allocations, func(allocation model.RoomAllocation, _ int) string { return SheetName(allocation.RoomNo) })
	// Sheet names are case-insensitive
	if duplicates := lo.FindDuplicates(lo.Map(sheetNames, func(name string, _ int) string { return strings.ToLower(name) })); len(duplicates) > 0 {
		return fmt.Errorf("room numbers collide once truncated to sheet names: %v", duplicates)
	}

	file := excelize.NewFile()
	defer file.Close()

	benchStyle, err := file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Vertical: "top",
			WrapText: true,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("cannot create bench style: %w", err)
	}

	for i, allocation := range allocations {
		// The first room takes over the default sheet
		if i == 0 {
			err = file.SetSheetName(defaultSheet, sheetNames[i])
		} else {
			_, err = file.NewSheet(sheetNames[i])
		}
		if err != nil {
			return fmt.Errorf("cannot create sheet for room %v: %w", allocation.RoomNo, err)
		}

		if err := writeRoom(file, sheetNames[i], allocation, benchStyle); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %v: %w", path, err)
	}
	return nil
}

func writeRoom(file *excelize.File, sheetName string, allocation model.RoomAllocation, benchStyle int) error {
	for row, benches := range allocation.Grid {
		for col, bench := range benches {
			cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return err
			}
			if len(bench) > 0 {
				if err := file.SetCellValue(sheetName, cellName, model.BenchLabel(bench, "")); err != nil {
					return fmt.Errorf("cannot write bench %v of room %v: %w", cellName, allocation.RoomNo, err)
				}
			}
			if err := file.SetCellStyle(sheetName, cellName, cellName, benchStyle); err != nil {
				return fmt.Errorf("cannot style bench %v of room %v: %w", cellName, allocation.RoomNo, err)
			}
		}
	}

	if allocation.Columns > 0 {
		lastColumn, err := excelize.ColumnNumberToName(allocation.Columns)
		if err != nil {
			return err
		}
		if err := file.SetColWidth(sheetName, "A", lastColumn, 22); err != nil {
			return fmt.Errorf("cannot set column width for room %v: %w", allocation.RoomNo, err)
		}
	}
	return nil
}
