package gcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// GCode contains the parsed command and provides
// GCodeArgs for reading the specific args
type GCode struct {
	CommandType rune
	CommandCode int
	Num         int
	Args        Args
}

// ErrChecksumBad is returned for bad gcode checksums
var ErrChecksumBad = errors.New("gcode: Bad Checksum")

// Parse creates a GCode from a string. Command words and arg labels
// are case insensitive, arg values keep their case.
func Parse(line string) (g GCode, err error) {
	// remove comments
	spl := strings.Split(line, ";")
	line = strings.TrimSpace(spl[0])

	// checksum verification if provided
	if spl := strings.Split(line, "*"); len(spl) > 1 {
		line = spl[0]
		lchs, _ := strconv.Atoi(strings.TrimSpace(spl[1]))

		var cchs byte
		for _, b := range []byte(line) {
			cchs ^= b
		}

		if cchs != byte(lchs) {
			err = ErrChecksumBad
			return
		}
	}

	fields := strings.Fields(line)
	for i, f := range fields {
		fields[i] = upperFirst(f)
	}

	g.Num = -1
	if len(fields) > 0 && fields[0][0] == 'N' {
		if len(fields) > 1 {
			var n int
			if _, err = fmt.Sscanf(fields[0], "N%d", &n); err != nil {
				return
			}
			g.Num = n
			fields = fields[1:]
		}
	}

	if len(fields) == 0 {
		err = errors.New("gcode: empty command")
		return
	}
	cmd := strings.ToUpper(fields[0])
	g.CommandType = rune(cmd[0])
	g.CommandCode, err = strconv.Atoi(cmd[1:])
	if err != nil {
		return
	}

	g.Args = make([]string, 0, len(fields)-1)
	g.Args = append(g.Args, fields[1:]...)

	return
}

func upperFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (g GCode) String() string {
	if g.Num == -1 {
		str := fmt.Sprintf("%v%v %v",
			string(g.CommandType),
			g.CommandCode, g.Args)
		return strings.TrimSpace(str)
	}
	str := fmt.Sprintf("N%v %v%v %v",
		g.Num, string(g.CommandType),
		g.CommandCode, g.Args)
	str = strings.TrimSpace(str)

	var chs byte
	for _, b := range []byte(str) {
		chs ^= b
	}
	return fmt.Sprintf("%v*%v", str, chs)
}

func (g GCode) IsG(code int) bool {
	return g.CommandType == 'G' && g.CommandCode == code
}

func (g GCode) IsM(code int) bool {
	return g.CommandType == 'M' && g.CommandCode == code
}
