/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Render formats instance as Name(field=value, ...) using the attached fields in order.
func Render[T KeyValueStore](instance T) (string, error) {
	c := ClassOf[T]()

	var b strings.Builder
	b.WriteString(c.Name())
	b.WriteByte('(')
	for i, f := range c.Fields() {
		v, err := f.Get(instance)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name())
		b.WriteByte('=')
		b.WriteString(formatValue(v))
	}
	b.WriteByte(')')
	return b.String(), nil
}

// Fingerprint hashes the type and the current value of every attached field.
// Instances with equal field values have equal fingerprints.
func Fingerprint[T KeyValueStore](instance T) (uint64, error) {
	c := ClassOf[T]()

	h := xxhash.New()
	_, _ = h.WriteString(c.typ.String())
	for _, f := range c.Fields() {
		v, err := f.Get(instance)
		if err != nil {
			return 0, err
		}
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(f.Name())
		_, _ = h.Write([]byte{'='})
		_, _ = h.WriteString(formatValue(v))
	}
	return h.Sum64(), nil
}

func formatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(tv)
	case fmt.Stringer:
		if rv := reflect.ValueOf(tv); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "nil"
		}
		return strconv.Quote(tv.String())
	default:
		return fmt.Sprintf("%v", tv)
	}
}
