package landmark

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/wall-blaster/parameter"
)

// ReadLines replays JSON-lines frames from r into out until EOF or ctx is done
// With pace set, consecutive frames are spaced by their timestamp difference
// Blank lines are skipped; a malformed line stops the replay with its line number
func ReadLines(ctx context.Context, r io.Reader, out chan<- Frame, pace bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), parameter.FeedReadLimit)

	var (
		line   int
		lastTs int64
		timer  *time.Timer
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}

		f, err := Decode(data)
		if err != nil {
			return fmt.Errorf("replay line %d: %w", line, err)
		}

		if pace && lastTs != 0 && f.TimestampMs > lastTs {
			wait := time.Duration(f.TimestampMs-lastTs) * time.Millisecond
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		lastTs = f.TimestampMs

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- f:
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("replay read: %w", err)
	}
	return nil
}
