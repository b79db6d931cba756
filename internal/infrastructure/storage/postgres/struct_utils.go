package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns returns the "db" tags of T in field order, descending into
// embedded structs. Repositories use it to build SELECT column lists.
//
// Usage:
//
//	columns := ExtractDBColumns[nomenclature.Product]()
//	// ["id", "name", "barcode", "category_id", "active"]
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

var columnCache sync.Map // map[reflect.Type][]fieldPath

type fieldPath struct {
	index []int
	tag   string
}

func fieldsOf(t reflect.Type) []fieldPath {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]fieldPath)
	}

	var out []fieldPath
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Anonymous {
				for _, inner := range fieldsOf(f.Type) {
					out = append(out, fieldPath{index: append([]int{i}, inner.index...), tag: inner.tag})
				}
				continue
			}
			tag := f.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			out = append(out, fieldPath{index: []int{i}, tag: tag})
		}
	}

	columnCache.Store(t, out)
	return out
}

func columnsOf(t reflect.Type) []string {
	fields := fieldsOf(t)
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.tag
	}
	return cols
}

// StructToMap converts a struct to a column → value map using "db" tags.
func StructToMap(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	fields := fieldsOf(rv.Type())
	res := make(map[string]any, len(fields))
	for _, f := range fields {
		res[f.tag] = rv.FieldByIndex(f.index).Interface()
	}
	return res
}

// RowValues returns the values of v in the order of columns.
// Columns without a matching field yield nil.
func RowValues(v any, columns []string) []any {
	m := StructToMap(v)
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = m[c]
	}
	return row
}
