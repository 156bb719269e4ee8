// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package config

import (
	"encoding"
	"reflect"

	"github.com/pkg/errors"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// TextUnmarshallerHook decodes string into any type which pointer
// implements encoding.TextUnmarshaler.
func TextUnmarshallerHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	text := []byte(reflect.ValueOf(data).String())
	switch {
	case t.Kind() == reflect.Ptr && t.Implements(textUnmarshalerType):
		val := reflect.New(t.Elem())
		err := val.Interface().(encoding.TextUnmarshaler).UnmarshalText(text)
		return val.Interface(), errors.WithStack(err)
	case t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(textUnmarshalerType):
		val := reflect.New(t)
		err := val.Interface().(encoding.TextUnmarshaler).UnmarshalText(text)
		return val.Elem().Interface(), errors.WithStack(err)
	}
	return data, nil
}
