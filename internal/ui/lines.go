package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"todo/internal/session"
)

// maxReadFailures bounds consecutive failed reads; a terminal that has hung
// up fails every read.
const maxReadFailures = 3

// ErrInputLost is returned when reading fails maxReadFailures times in a row.
var ErrInputLost = errors.New("input lost")

// RunLines feeds sess one line of r at a time. Read errors are reported
// through the session and reading resumes; EOF or a cancelled ctx ends the
// run, as do maxReadFailures failed reads in a row.
func RunLines(ctx context.Context, sess *session.Session, r io.Reader) error {
	br := bufio.NewReader(r)
	sess.Start()
	failures := 0
	for !sess.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := br.ReadString('\n')
		switch {
		case err == nil:
			failures = 0
			sess.Feed(line)
		case errors.Is(err, io.EOF):
			if line != "" {
				sess.Feed(line)
			}
			return nil
		default:
			sess.ReadFailed(err)
			failures++
			if failures >= maxReadFailures {
				return fmt.Errorf("%w: %v", ErrInputLost, err)
			}
		}
	}
	return nil
}
