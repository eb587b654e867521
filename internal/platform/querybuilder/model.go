package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds a multi-row INSERT from structs tagged with `db`. All
// models must share one type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, ErrMissingRows
	}

	columns, fields, err := taggedColumns(reflect.TypeOf(models[0]))
	if err != nil {
		return "", nil, err
	}

	builder := InsertInto(table).Columns(columns...).Suffix(suffix)
	for _, model := range models {
		value := reflect.ValueOf(model)
		row := make([]any, 0, len(fields))
		for _, idx := range fields {
			row = append(row, value.Field(idx).Interface())
		}
		builder.Values(row...)
	}
	return builder.ToSQL()
}

func taggedColumns(typ reflect.Type) ([]string, []int, error) {
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %v", typ)
	}

	columns := make([]string, 0, typ.NumField())
	fields := make([]int, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		columns = append(columns, name)
		fields = append(fields, i)
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return columns, fields, nil
}
