// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package config

import (
	"time"

	validator "gopkg.in/bluesuncorp/validator.v9"
)

func MinTimeValidation(fl validator.FieldLevel) bool {
	t, min, ok := getTimeForValidation(fl.Field().Interface(), fl.Param())
	return ok && min <= t
}

func getTimeForValidation(v interface{}, param string) (actual time.Duration, check time.Duration, ok bool) {
	check, err := time.ParseDuration(param)
	if err != nil {
		return
	}
	actual, ok = v.(time.Duration)
	return
}
