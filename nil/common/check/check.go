package check

import (
	"fmt"
)

// PanicIfNotf panics on false with the given message.
// Reserved for broken invariants, anything recoverable is returned as an error.
func PanicIfNotf(flag bool, format string, args ...any) {
	if !flag {
		panic(fmt.Sprintf(format, args...))
	}
}

// PanicIfErr calls panic(err) if err is not nil.
func PanicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}
