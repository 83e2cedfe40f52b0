package gcode

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Args provides methods for reading tagged args
type Args []string

// GetString for an arg label. Labels without a value are not found.
func (a Args) GetString(f rune) (x string, ok bool) {
	for _, str := range a {
		if r, size := utf8.DecodeRuneInString(str); r == f && size < len(str) {
			return str[size:], true
		}
	}
	return
}

// GetInt for an arg label
func (a Args) GetInt(f rune) (x int, ok bool) {
	var str string
	var err error
	if str, ok = a.GetString(f); ok {
		if x, err = strconv.Atoi(str); err != nil {
			ok = false
		}
	}
	return
}

// GetIntOr returns def if the arg is missing or malformed
func (a Args) GetIntOr(f rune, def int) int {
	if x, ok := a.GetInt(f); ok {
		return x
	}
	return def
}

func (a Args) String() string {
	return strings.Join(a, " ")
}
