package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/limaJavier/examseating/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubjectFlag(t *testing.T) {
	name, path, err := parseSubjectFlag(" Math = sheets/math.xlsx ")
	assert.NoError(t, err)
	assert.Equal(t, "Math", name)
	assert.Equal(t, "sheets/math.xlsx", path)

	name, path, err = parseSubjectFlag("Physics=C:=weird.xlsx")
	assert.NoError(t, err)
	assert.Equal(t, "Physics", name)
	assert.Equal(t, "C:=weird.xlsx", path)

	for _, value := range []string{"Math", "=math.xlsx", "Math=", ""} {
		_, _, err := parseSubjectFlag(value)
		assert.Error(t, err, value)
	}
}

func TestSubjectFlagsKeepOrder(t *testing.T) {
	var flags subjectFlags

	assert.NoError(t, flags.Set("Math=math.xlsx"))
	assert.NoError(t, flags.Set("Physics=physics.xlsx"))

	assert.Equal(t, subjectFlags{"Math=math.xlsx", "Physics=physics.xlsx"}, flags)
	assert.Equal(t, "Math=math.xlsx, Physics=physics.xlsx", flags.String())
}

func TestLoadRequestFile(t *testing.T) {
	writeRequest := func(t *testing.T, content string) string {
		file := filepath.Join(t.TempDir(), "request.json")
		require.NoError(t, os.WriteFile(file, []byte(content), 0666))
		return file
	}
	rooms := `"rooms": [{"roomNo": "R1", "rows": 1, "columns": 1}], "subjects": [{"name": "Math", "rolls": ["M1"]}]`

	t.Run("Configured values fill absent fields", func(t *testing.T) {
		file := writeRequest(t, `{`+rooms+`}`)

		input, err := loadRequestFile(file, 3, "Zig-Zag Alternating", map[string]bool{})

		require.NoError(t, err)
		assert.Equal(t, 3, input.SeatsPerBench)
		assert.Equal(t, model.ZigZagAlternating, input.Mode)
	})

	t.Run("Request fields win over configured values", func(t *testing.T) {
		file := writeRequest(t, `{`+rooms+`, "seatsPerBench": 1, "mode": "Column Alternating"}`)

		input, err := loadRequestFile(file, 3, "Zig-Zag Alternating", map[string]bool{})

		require.NoError(t, err)
		assert.Equal(t, 1, input.SeatsPerBench)
		assert.Equal(t, model.ColumnAlternating, input.Mode)
	})

	t.Run("Explicit flags win over the request", func(t *testing.T) {
		file := writeRequest(t, `{`+rooms+`, "seatsPerBench": 1, "mode": "Column Alternating"}`)

		input, err := loadRequestFile(file, 3, "Zig-Zag Alternating", map[string]bool{"seats": true, "mode": true})

		require.NoError(t, err)
		assert.Equal(t, 3, input.SeatsPerBench)
		assert.Equal(t, model.ZigZagAlternating, input.Mode)
	})

	t.Run("Unsupported configured mode", func(t *testing.T) {
		file := writeRequest(t, `{`+rooms+`}`)

		_, err := loadRequestFile(file, 2, "Spiral", map[string]bool{})

		kind, ok := model.KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, model.UnsupportedMode, kind)
	})
}
