package sheet

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const (
	RoomNoHeader  = "Room No"
	RowsHeader    = "Rows"
	ColumnsHeader = "Columns"
	RollNoHeader  = "Roll No"
)

// LoadRooms reads the rooms listed in the first sheet of an xlsx workbook. The header row must contain "Room No", "Rows" and "Columns", in any order
func LoadRooms(path string) ([]model.Room, error) {
	rows, err := readFirstSheet(path)
	if err != nil {
		return nil, err
	}

	columns, err := headerColumns(rows, RoomNoHeader, RowsHeader, ColumnsHeader)
	if err != nil {
		return nil, fmt.Errorf("invalid room sheet %v: %w", path, err)
	}
	roomNoColumn, rowsColumn, columnsColumn := columns[0], columns[1], columns[2]

	rooms := make([]model.Room, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := i + 2 // Spreadsheet rows are 1-based and the first one is the header

		roomRows, err := parseInteger(cell(row, rowsColumn))
		if err != nil {
			return nil, fmt.Errorf("invalid \"%v\" value at row %d of %v: %w", RowsHeader, line, path, err)
		}
		roomColumns, err := parseInteger(cell(row, columnsColumn))
		if err != nil {
			return nil, fmt.Errorf("invalid \"%v\" value at row %d of %v: %w", ColumnsHeader, line, path, err)
		}

		rooms = append(rooms, model.Room{
			RoomNo:  cell(row, roomNoColumn),
			Rows:    roomRows,
			Columns: roomColumns,
		})
	}
	return rooms, nil
}

// LoadSubject reads the "Roll No" column of the first sheet of an xlsx workbook. Blank cells are skipped and sheet order is kept
func LoadSubject(name, path string) (model.SubjectData, error) {
	rows, err := readFirstSheet(path)
	if err != nil {
		return model.SubjectData{}, err
	}

	columns, err := headerColumns(rows, RollNoHeader)
	if err != nil {
		return model.SubjectData{}, fmt.Errorf("invalid subject sheet %v: %w", path, err)
	}

	rolls := lo.Map(rows[1:], func(row []string, _ int) string { return cell(row, columns[0]) })
	return model.SubjectData{
		Name:  strings.TrimSpace(name),
		Rolls: model.CleanRolls(rolls),
	}, nil
}

func readFirstSheet(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %v: %w", path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %v has no sheets", path)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet \"%v\" of %v: %w", sheets[0], path, err)
	}
	return rows, nil
}

// Returns the index of every requested header in the first row
func headerColumns(rows [][]string, headers ...string) ([]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row, expected columns: %v", strings.Join(headers, ", "))
	}

	header := lo.Map(rows[0], func(value string, _ int) string { return strings.TrimSpace(value) })
	missing := lo.Filter(headers, func(name string, _ int) bool { return !slices.Contains(header, name) })
	if len(missing) > 0 {
		return nil, fmt.Errorf("sheet must contain columns: %v", strings.Join(headers, ", "))
	}

	return lo.Map(headers, func(name string, _ int) int { return slices.Index(header, name) }), nil
}

// Rows returned by excelize drop their trailing empty cells
func cell(row []string, column int) string {
	if column >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[column])
}

func blank(row []string) bool {
	return lo.EveryBy(row, func(value string) bool { return strings.TrimSpace(value) == "" })
}

// Numeric cells may come formatted as floats ("3.0"); only whole numbers are accepted
func parseInteger(value string) (int, error) {
	if integer, err := strconv.Atoi(value); err == nil {
		return integer, nil
	}
	float, err := strconv.ParseFloat(value, 64)
	if err != nil || float != math.Trunc(float) {
		return 0, fmt.Errorf("\"%v\" is not a whole number", value)
	}
	return int(float), nil
}
