package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

func ReadRequestBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func NotFound[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusNotFound,
	}
}

func _WriteResult(w http.ResponseWriter, method string, path string, res Result) {
	if res.status != http.StatusOK {
		slog.Warn(fmt.Sprintf("failed %s %s", method, path), "status", res.status)
		WriteResponse(w, NewErrorResponse(path, res.result), res.status)
	} else {
		slog.Debug(fmt.Sprintf("successfully finished %s %s", method, path))
		WriteResponse(w, res.result, res.status)
	}
}

func MapPost[F any](app chi.Router, path string, handler func(F) Result) {
	app.Post(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("POST " + path)
		body, err := ReadRequestBody[F](r)
		if err != nil {
			_WriteResult(w, "POST", path, BadRequest(err.Error()))
			return
		}
		_WriteResult(w, "POST", path, handler(body))
	})
}

type _RequestField struct {
	index    int
	name     string
	from_url bool
}

// Maps a GET handler whose request struct is filled from the url.
//
// Fields tagged `json` are read from the query string, fields tagged `path`
// from chi url parameters. Pointer fields stay nil if the value is missing.
func MapGet[F any](app chi.Router, path string, handler func(F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := make([]_RequestField, 0, num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		if tag := field.Tag.Get("path"); tag != "" {
			fields = append(fields, _RequestField{i, tag, true})
			continue
		}
		if tag := field.Tag.Get("json"); tag != "" {
			fields = append(fields, _RequestField{i, tag, false})
		}
	}
	app.Get(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("GET " + path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			var value string
			if field.from_url {
				value = chi.URLParam(r, field.name)
			} else {
				value = query.Get(field.name)
			}
			if value == "" {
				continue
			}
			if err := _SetValue(t.Field(field.index), value); err != nil {
				_WriteResult(w, "GET", path, BadRequest(fmt.Sprintf("invalid parameter %s: %s", field.name, err.Error())))
				return
			}
		}
		_WriteResult(w, "GET", path, handler(t.Interface().(F)))
	})
}

func _SetValue(f reflect.Value, value string) error {
	switch f.Kind() {
	case reflect.Pointer:
		elem := reflect.New(f.Type().Elem())
		if err := _SetValue(elem.Elem(), value); err != nil {
			return err
		}
		f.Set(elem)
	case reflect.Bool:
		num, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		f.SetBool(num)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, err := strconv.ParseInt(value, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(num)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		num, err := strconv.ParseUint(value, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(num)
	case reflect.Float32, reflect.Float64:
		num, err := strconv.ParseFloat(value, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetFloat(num)
	case reflect.String:
		f.SetString(value)
	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
	return nil
}
