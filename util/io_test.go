package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CVSSimpleTest struct {
	Name   string  `csv:"name"`
	Age    int     `csv:"age"`
	Height float32 `csv:"height"`
	Gender bool    `csv:"gender"`
}

func TestCSVSimple(t *testing.T) {
	file := "./testdata/simple.csv"

	rows := NewList[CVSSimpleTest](3)
	for row, err := range ReadCSVFromFile[CVSSimpleTest](file, ';') {
		require.NoError(t, err)
		rows.Add(row)
	}
	require.Len(t, rows, 3)
	assert.Equal(t, CVSSimpleTest{"John", 30, 170, false}, rows[0])
	assert.Equal(t, CVSSimpleTest{"Jane", 25, 160, true}, rows[1])
	assert.Equal(t, CVSSimpleTest{"Joe", 35, 175, true}, rows[2])
}

func TestCSVError(t *testing.T) {
	file := "./testdata/error.csv"

	valid := 0
	failed := 0
	for row, err := range ReadCSVFromFile[CVSSimpleTest](file, ';') {
		if err != nil {
			failed++
			assert.Contains(t, err.Error(), "line 3")
			continue
		}
		valid++
		assert.NotEqual(t, "Jane", row.Name)
	}
	assert.Equal(t, 2, valid)
	assert.Equal(t, 1, failed)
}

func TestCSVMissingFile(t *testing.T) {
	count := 0
	for _, err := range ReadCSVFromFile[CVSSimpleTest]("./testdata/missing.csv", ';') {
		assert.True(t, errors.Is(err, os.ErrNotExist))
		count++
	}
	assert.Equal(t, 1, count)
}

func TestLoadOrBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "values.json")
	calls := 0
	build := func() (Dict[uint32, float64], error) {
		calls++
		return Dict[uint32, float64]{1: 1.5, 2: 2.5}, nil
	}

	first, err := LoadOrBuild(path, build)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	second, err := LoadOrBuild(path, build)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second load should hit the file")
	assert.Equal(t, first, second)
}

func TestLoadOrBuildCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	value, err := LoadOrBuild(path, func() (List[int], error) {
		return List[int]{1, 2, 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, List[int]{1, 2, 3}, value)

	reread, err := ReadJSONFromFile[List[int]](path)
	require.NoError(t, err)
	assert.Equal(t, value, reread)
}

func TestLoadOrBuildError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	_, err := LoadOrBuild(path, func() (int, error) {
		return 0, errors.New("no source data")
	})
	assert.EqualError(t, err, "no source data")
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
