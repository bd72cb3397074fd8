//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package redact prints configuration structs one field per line, hiding
// the values of any field tagged `redact:"true"`.
package redact

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"
)

const (
	nestIndent  = "    "
	hiddenValue = "🤐🤐🤐"
	hiddenList  = "[🤐🤐🤐🤐]"
	hiddenBlock = "🤐🤐🤐🤐🤐"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

func ToBytes(pointerToStruct any) ([]byte, error) {
	output := &bytes.Buffer{}
	err := toWriter(output, reflect.ValueOf(pointerToStruct).Elem(), "")
	if err != nil {
		return nil, fmt.Errorf("[toWriter]: %w", err)
	}
	return output.Bytes(), nil
}

func toWriter(w io.Writer, s reflect.Value, indent string) error {
	typeOfT := s.Type()
	for i := range s.NumField() {
		f := s.Field(i)
		name := typeOfT.Field(i).Name
		hide := strings.EqualFold(typeOfT.Field(i).Tag.Get("redact"), "true")

		var err error
		switch {
		case f.Type().Implements(stringerType):
			err = writeLine(w, indent, name, f.Interface(), hide, hiddenValue)
		case f.Kind() == reflect.Struct:
			err = writeStructField(w, name, f, hide, indent)
		case f.Kind() == reflect.Slice:
			err = writeSliceFields(w, name, f, hide, indent)
		case isScalar(f.Kind()):
			err = writeLine(w, indent, name, f.Interface(), hide, hiddenValue)
		default:
			return fmt.Errorf("unsupported field kind: %v", f.Kind().String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func writeLine(w io.Writer, indent, name string, val any, hide bool, hidden string) error {
	printVal := hidden
	if !hide {
		printVal = fmt.Sprint(val)
	}
	_, err := fmt.Fprintf(w, "%v%v = %v\n", indent, name, printVal)
	return err
}

func writeSliceFields(w io.Writer, fieldName string, fieldVal reflect.Value, hide bool, indent string) error {
	elemType := fieldVal.Type().Elem()

	// Structs that know how to print themselves stay on one line, e.g. room blocks.
	if elemType.Kind() != reflect.Struct || elemType.Implements(stringerType) {
		return writeLine(w, indent, fieldName, fieldVal.Interface(), hide, hiddenList)
	}
	for j := range fieldVal.Len() {
		if _, err := fmt.Fprintf(w, "%v%v[%d]\n", indent, fieldName, j); err != nil {
			return err
		}
		var err error
		if hide {
			_, err = fmt.Fprintf(w, "%v🤐🤐\n", indent+nestIndent)
		} else {
			err = toWriter(w, fieldVal.Index(j), indent+nestIndent)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeStructField(w io.Writer, fieldName string, fieldVal reflect.Value, hide bool, indent string) error {
	if _, err := fmt.Fprintf(w, "%v%v\n", indent, fieldName); err != nil {
		return err
	}
	if hide {
		_, err := fmt.Fprintf(w, "%v%v\n", indent+nestIndent, hiddenBlock)
		return err
	}
	return toWriter(w, fieldVal, indent+nestIndent)
}
