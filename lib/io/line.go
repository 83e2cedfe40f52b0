package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	maxLineLength = 1 << 20

	endLine = '\n'
)

// LinePipe turns the reader and writer into the two directions of c,
// using a newline delimited text protocol. Lines read are trimmed and
// empty lines are dropped. Strings, byte slices and fmt.Stringers may
// be written.
//
// The read side of c is closed when reader is exhausted. Once the write
// side of c is closed, writer is closed too if it is an io.Closer.
// Returns the first error from either side, io.EOF for a clean end of
// input.
func LinePipe(reader io.Reader, writer io.Writer, c Conn) error {
	err := make(chan error, 4)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(c.rd)

		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
		for scanner.Scan() {
			if str := strings.TrimSpace(scanner.Text()); str != "" {
				c.rd <- str
			}
		}
		if lerr := scanner.Err(); lerr != nil {
			err <- lerr
		} else {
			err <- io.EOF
		}
	}()

	go func() {
		defer wg.Done()

		bw := bufio.NewWriter(writer)
		for data := range c.wr {
			var str string
			switch v := data.(type) {
			case []byte:
				str = string(v)
			case string:
				str = v
			case fmt.Stringer:
				str = v.String()
			default:
				panic(fmt.Sprintf("Unknown value passed to in channel: %v", data))
			}
			str = strings.TrimSpace(str) + string(endLine)
			if _, lerr := bw.WriteString(str); lerr != nil {
				err <- lerr
				// keep handlers from blocking on a dead writer
				for range c.wr {
				}
				return
			}
			bw.Flush()
		}
		if closer, ok := writer.(io.Closer); ok {
			closer.Close()
		}
	}()

	wg.Wait()
	return <-err // return first error
}
