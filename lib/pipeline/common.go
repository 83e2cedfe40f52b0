package pipeline

import (
	"fmt"

	"github.com/colinrgodsey/orbitd/lib/field"
	"github.com/colinrgodsey/orbitd/lib/gcode"
	"github.com/colinrgodsey/orbitd/lib/io"
	"github.com/colinrgodsey/orbitd/lib/render"
)

// Echo is a response line passed downstream so it stays ordered with
// the commands around it. The sim handler writes it back upstream.
type Echo string

// Scene is the projected state of every body, sent downstream by the
// sim handler after each batch of frames.
type Scene struct {
	G       float64
	Tracks  []render.Track
	Sources []field.Source
}

func okLine(g gcode.GCode) string {
	if g.Num == -1 {
		return "ok"
	}
	return fmt.Sprintf("ok N%v", g.Num)
}

func info(head io.Conn, s string, args ...any) {
	head.Write(fmt.Sprintf("info:"+s, args...))
}

func warn(head io.Conn, s string, args ...any) {
	head.Write(fmt.Sprintf("warn:"+s, args...))
}

/*
run relays everything the tail sends back up to head, and hands every
message from head to read. Once head is drained the tail is closed, and
head is closed after the tail has finished responding. Closing the top
of a pipeline therefore shuts down every handler below it in order.
*/
func run(head, tail io.Conn, read func(msg io.Any)) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range tail.Rc() {
			head.Write(msg)
		}
	}()

	for msg := range head.Rc() {
		read(msg)
	}
	tail.Close()
	<-done
	head.Close()
}
