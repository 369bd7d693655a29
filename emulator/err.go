package emulator

import (
	"errors"

	"github.com/sunsided/dcpu-16/translate"
)

var f = translate.From

var (
	ErrProgramTooLarge = errors.New(f("program exceeds RAM size"))
)
