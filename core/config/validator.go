// Copyright (c) 2016 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package config

import (
	"github.com/pkg/errors"
	"gopkg.in/bluesuncorp/validator.v9"
)

var validations = []struct {
	key string
	val validator.Func
}{
	{"min-time", MinTimeValidation},
}

var defaultValidator = newValidator()

func Validate(value interface{}) error {
	return errors.WithStack(defaultValidator.Struct(value))
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.SetTagName("validate")
	for _, val := range validations {
		_ = validate.RegisterValidation(val.key, val.val)
	}
	return validate
}

// RegisterCustom used to set custom validation check hooks on specific types,
// that will be called on such type validation, even if it is nested field.
func RegisterCustom(v CustomValidation, types ...interface{}) (_ struct{}) {
	if len(types) < 1 {
		panic("should be registered for at least one type")
	}
	defaultValidator.RegisterStructValidation(func(sl validator.StructLevel) {
		v(structLevelHandle{sl})
	}, types...)
	return
}

type ValidateHandle interface {
	Value() interface{}
	ReportError(field, reason string)
}

type CustomValidation func(h ValidateHandle)

type structLevelHandle struct{ validator.StructLevel }

var _ ValidateHandle = structLevelHandle{}

func (sl structLevelHandle) Value() interface{} { return sl.Current().Interface() }
func (sl structLevelHandle) ReportError(field, reason string) {
	sl.StructLevel.ReportError(nil, field, "", reason, "")
}
