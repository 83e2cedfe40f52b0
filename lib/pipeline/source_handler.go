package pipeline

import (
	"fmt"
	"strings"

	"github.com/colinrgodsey/orbitd/lib/gcode"
	"github.com/colinrgodsey/orbitd/lib/io"
)

// SourceHandler parses protocol lines into GCode for the handlers below.
// Responses are produced downstream, after earlier commands are done.
func SourceHandler(head, tail io.Conn) {
	run(head, tail, func(msg io.Any) {
		str, ok := msg.(string) // only strings
		if !ok {
			tail.Write(msg)
			return
		}

		if strings.IndexRune(str, ';') == 0 || str == "" {
			return // comment-only or blank line
		}

		g, err := gcode.Parse(str)
		if err != nil {
			tail.Write(Echo(fmt.Sprintf("error: failed parsing command (%v)", err)))
			return
		}

		//TODO: track the expected line number and request resends
		if g.IsM(110) {
			tail.Write(Echo(okLine(g)))
			return
		}
		tail.Write(g)
	})
}
