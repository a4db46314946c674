package util

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/slog"
)

//*******************************************
// json files
//*******************************************

// Writes value as indented json, creating parent directories if needed.
func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", file, err)
	}
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode %s: %w", file, err)
	}
	return value, nil
}

// Reads the json document at path. If it is missing or can not be decoded
// the value is rebuilt with build and written back to path.
//
// Read failures are never returned, only errors from build are.
func LoadOrBuild[T any](path string, build func() (T, error)) (T, error) {
	value, err := ReadJSONFromFile[T](path)
	if err == nil {
		slog.Debug("loaded cached file", "path", path)
		return value, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("no cached file, building", "path", path)
	} else {
		slog.Warn("failed to read cached file, rebuilding", "path", path, "err", err)
	}
	value, err = build()
	if err != nil {
		return value, err
	}
	if err := WriteJSONToFile(value, path); err != nil {
		slog.Warn("failed to persist cache", "path", path, "err", err)
	}
	return value, nil
}

//*******************************************
// csv files
//*******************************************

// Iterates the rows of a csv file with a header line, decoding every row into T.
//
// Fields of T are matched to columns through their "csv" tag, columns that are
// missing from the header leave the field at its zero value. A value that can
// not be parsed into its field type is yielded as an error.
func ReadCSVFromFile[T any](filename string, delimiter rune) func(yield func(T, error) bool) {
	return func(yield func(T, error) bool) {
		var val T
		file, err := os.Open(filename)
		if err != nil {
			yield(val, err)
			return
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.Comma = delimiter
		reader.FieldsPerRecord = -1
		header, err := reader.Read()
		if err != nil {
			yield(val, fmt.Errorf("failed to read header of %s: %w", filename, err))
			return
		}
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], "\ufeff")
		}
		name_row_mapping := NewDict[string, int](len(header))
		for i, name := range header {
			name_row_mapping[name] = i
		}

		typ := reflect.TypeOf(val)
		num_field := typ.NumField()
		fields := NewList[Triple[int, int, reflect.Kind]](num_field)
		for i := 0; i < num_field; i++ {
			field := typ.Field(i)
			tag := field.Tag.Get("csv")
			if tag == "" {
				continue
			}
			if !name_row_mapping.ContainsKey(tag) {
				continue
			}
			row := name_row_mapping[tag]
			switch field.Type.Kind() {
			case reflect.Bool:
				fields.Add(MakeTriple(i, row, reflect.Bool))
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				fields.Add(MakeTriple(i, row, reflect.Int))
			case reflect.Float32, reflect.Float64:
				fields.Add(MakeTriple(i, row, reflect.Float64))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				fields.Add(MakeTriple(i, row, reflect.Uint))
			case reflect.String:
				fields.Add(MakeTriple(i, row, reflect.String))
			}
		}
		line := 1
		for {
			record, err := reader.Read()
			line += 1
			if err == io.EOF {
				break
			}
			if err != nil {
				if !yield(val, fmt.Errorf("%s line %d: %w", filename, line, err)) {
					return
				}
				continue
			}
			t := reflect.New(typ).Elem()
			var row_err error
			for _, field := range fields {
				index := field.A
				row := field.B
				kind := field.C
				if row >= len(record) {
					continue
				}
				value := record[row]
				if value == "" {
					continue
				}
				f := t.Field(index)
				switch kind {
				case reflect.Bool:
					num, err := strconv.ParseBool(value)
					row_err = errors.Join(row_err, err)
					f.SetBool(num)
				case reflect.Int:
					num, err := strconv.ParseInt(value, 10, 64)
					row_err = errors.Join(row_err, err)
					f.SetInt(num)
				case reflect.Uint:
					num, err := strconv.ParseUint(value, 10, 64)
					row_err = errors.Join(row_err, err)
					f.SetUint(num)
				case reflect.Float64:
					num, err := strconv.ParseFloat(value, 64)
					row_err = errors.Join(row_err, err)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
			}
			if row_err != nil {
				if !yield(val, fmt.Errorf("%s line %d: %w", filename, line, row_err)) {
					return
				}
				continue
			}
			if !yield(t.Interface().(T), nil) {
				return
			}
		}
	}
}
