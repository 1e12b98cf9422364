/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"

	"github.com/go-openapi/strfmt"

	kv "github.com/suparena/keyvaluestore"
	"github.com/suparena/keyvaluestore/errors"
)

// Properties converts def into properties for T.
func Properties[T kv.KeyValueStore](def *Definition) ([]kv.Property[T], error) {
	props := make([]kv.Property[T], 0, len(def.Properties))
	for _, pd := range def.Properties {
		p, err := property[T](pd)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// Attach converts def and attaches the result to T. Nothing is attached unless every
// property is valid.
func Attach[T kv.KeyValueStore](def *Definition) error {
	props, err := Properties[T](def)
	if err != nil {
		return err
	}
	if err := kv.Validate(props...); err != nil {
		return err
	}
	return kv.AttachMany(props...)
}

func property[T kv.KeyValueStore](pd PropertyDef) (kv.Property[T], error) {
	p := kv.Property[T]{Name: pd.Name, Key: pd.Key, Doc: pd.Doc}
	key := pd.Key

	if pd.Default != nil {
		if key == "" {
			return p, errors.NewConfigurationError(pd.Name, "missing key for default value")
		}
		fallback := pd.Default
		p.Getter = kv.CustomGetter(func(instance T) (any, error) {
			return instance.Get(key, fallback)
		})
	}

	switch {
	case pd.ReadOnly:
		p.Setter = kv.ReadOnly[T]()
	case pd.Format != "":
		format := pd.Format
		if !strfmt.Default.ContainsName(format) {
			return p, errors.NewConfigurationError(pd.Name, fmt.Sprintf("unknown format %q", format))
		}
		name := pd.Name
		p.Setter = kv.CustomSetter(func(instance T, value any) error {
			s, ok := value.(string)
			if !ok {
				return errors.NewValidationError(name, fmt.Sprintf("%s value must be a string, got %T", format, value))
			}
			if !strfmt.Default.Validates(format, s) {
				return errors.NewValidationError(name, fmt.Sprintf("%q is not a valid %s", s, format))
			}
			return instance.Set(key, value)
		})
	}

	return p, nil
}
