package log

import (
	"context"
	"encoding/json"
	"reflect"
)

// PrintArray prints arr as a JSON array, or one pretty-printed block per item.
func PrintArray[K any](ctx context.Context, arr []K, asJSON bool, fieldNameReplacements map[string]string) {
	if asJSON {
		data, _ := json.Marshal(arr)
		From(ctx).Println(string(data))
	} else {
		PrettyPrintArray(ctx, arr, fieldNameReplacements)
	}
}

func PrettyPrintArray[K any](ctx context.Context, arr []K, fieldNameReplacements map[string]string) {
	l := From(ctx)

	if len(arr) == 0 {
		l.Println("NO RESULTS")
		return
	}

	l.Println("--------------------------------------")
	for _, item := range arr {
		PrettyPrint(ctx, item, fieldNameReplacements)
		l.Println("--------------------------------------")
	}
}

func PrettyPrint(ctx context.Context, value any, fieldNameReplacements map[string]string) {
	l := From(ctx)

	refVal := reflect.ValueOf(value)

	if refVal.Kind() == reflect.Ptr {
		refVal = refVal.Elem()
	}

	if refVal.Kind() != reflect.Struct {
		l.PrintlnUnstyled(value)
		return
	}

	for i := 0; i < refVal.NumField(); i++ {
		field := refVal.Type().Field(i)
		fieldName := field.Name
		val := refVal.Field(i)

		if field.Type.Kind() == reflect.Ptr && !val.IsNil() {
			val = val.Elem()
		}

		value := val.Interface()

		if val.Type().Kind() == reflect.Struct || val.Type().Kind() == reflect.Map || val.Type().Kind() == reflect.Slice || val.Type().Kind() == reflect.Array {
			data, _ := json.Marshal(value)
			value = string(data)
		}

		if fieldNameReplacements != nil {
			if replacement, ok := fieldNameReplacements[fieldName]; ok {
				fieldName = replacement
			}
		}

		l.Printf("%s: %v", fieldName, value)
	}
}
