package utils

import (
	"bytes"
	"runtime"
)

// Stack returns the calling goroutine's stack trace, dropping `skip` leading
// frames (two lines per frame after the goroutine header).
func Stack(skip int) []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}
	lines := bytes.SplitN(buf, []byte("\n"), 1+2*skip+1)
	if len(lines) < 2+2*skip {
		return buf
	}
	out := [][]byte{lines[0], lines[len(lines)-1]}
	return bytes.Join(out, []byte("\n"))
}
