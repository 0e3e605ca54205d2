// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"errors"

	"github.com/ezrec/rvcm/translate"
)

var f = translate.From

var (
	ErrSettingUnknown = errors.New(f("unknown setting"))
)

// ErrBackend is an unknown bus backend name.
type ErrBackend string

func (err ErrBackend) Error() string {
	return f("backend '%v' unknown", string(err))
}

// ErrSettingMissing is a setting required by the configuration.
type ErrSettingMissing string

func (err ErrSettingMissing) Error() string {
	return f("setting %v required", string(err))
}

// ErrSetting is a setting value that could not be applied.
type ErrSetting struct {
	Name  string
	Value string
	Err   error
}

func (err *ErrSetting) Error() string {
	return f("setting %v='%v' %v", err.Name, err.Value, err.Err)
}

func (err *ErrSetting) Unwrap() error {
	return err.Err
}
