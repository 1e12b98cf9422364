/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyvaluestore

import (
	stderrors "errors"
	"go/token"

	"go.uber.org/zap"

	"github.com/suparena/keyvaluestore/errors"
)

// Attach resolves p and installs the resulting field on T.
// A field already attached under the same name is replaced.
func Attach[T KeyValueStore](p Property[T]) (*Field[T], error) {
	return ClassOf[T]().Attach(p)
}

// AttachMany attaches props to T in order and stops at the first failure.
// Fields attached before the failure stay attached; use Validate first for all-or-nothing.
func AttachMany[T KeyValueStore](props ...Property[T]) error {
	return ClassOf[T]().AttachMany(props...)
}

// Validate resolves props without attaching anything and returns every configuration error.
func Validate[T KeyValueStore](props ...Property[T]) error {
	var errs []error
	for _, p := range props {
		if _, err := resolve(p); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Attach resolves p and installs the resulting field on the class.
func (c *Class[T]) Attach(p Property[T]) (*Field[T], error) {
	f, err := resolve(p)
	if err != nil {
		return nil, err
	}
	c.install(f)

	logger.Load().Debug("Property attached",
		zap.String("type", c.typ.String()),
		zap.String("field", f.name),
		zap.String("key", f.key),
		zap.Bool("readOnly", f.ReadOnly()),
	)
	return f, nil
}

// AttachMany attaches props in order and stops at the first failure.
func (c *Class[T]) AttachMany(props ...Property[T]) error {
	for _, p := range props {
		if _, err := c.Attach(p); err != nil {
			return err
		}
	}
	return nil
}

// resolve turns a property into a field, choosing default or custom accessors.
func resolve[T KeyValueStore](p Property[T]) (*Field[T], error) {
	if !token.IsIdentifier(p.Name) {
		return nil, errors.NewConfigurationError(p.Name, "name is not a valid identifier")
	}

	f := &Field[T]{name: p.Name, key: p.Key, doc: p.Doc}
	key := p.Key

	switch p.Getter.kind {
	case useDefault:
		if key == "" {
			return nil, errors.NewConfigurationError(p.Name, "missing key for default getter")
		}
		f.get = func(instance T) (any, error) {
			return instance.Get(key, nil)
		}
	case useCustom:
		if p.Getter.fn == nil {
			return nil, errors.NewConfigurationError(p.Name, "custom getter is nil")
		}
		f.get = p.Getter.fn
	default:
		return nil, errors.NewConfigurationError(p.Name, "unsupported getter")
	}

	switch p.Setter.kind {
	case disabled:
		f.set = nil
	case useCustom:
		if p.Setter.fn == nil {
			return nil, errors.NewConfigurationError(p.Name, "custom setter is nil")
		}
		f.set = p.Setter.fn
	case useDefault:
		if key == "" {
			return nil, errors.NewConfigurationError(p.Name, "missing key for default setter")
		}
		f.set = func(instance T, value any) error {
			return instance.Set(key, value)
		}
	default:
		return nil, errors.NewConfigurationError(p.Name, "unsupported setter")
	}

	return f, nil
}
