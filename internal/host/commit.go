package host

import (
	"context"
	"errors"
	"log/slog"

	"pcb-transition/internal/transition"
)

// ErrDeclined is recorded when the editor reports a creation as unsuccessful
// without an error.
var ErrDeclined = errors.New("creation declined by editor")

// CommitResult summarizes a commit.
type CommitResult struct {
	Requested int
	Created   int
	// Failures holds one error per segment that was not created, keyed by
	// segment index.
	Failures map[int]error
	// Err is set when the context ended before every segment was submitted.
	Err error
}

// Partial reports whether some but not all segments were created.
func (r CommitResult) Partial() bool {
	return r.Created > 0 && r.Created < r.Requested
}

// Commit submits segments one at a time in order, waiting for each creation
// before starting the next. A failed segment is logged and skipped; the
// remaining segments are still submitted.
func Commit(ctx context.Context, c Creator, segments []transition.Segment, logger *slog.Logger) CommitResult {
	if logger == nil {
		logger = slog.Default()
	}
	res := CommitResult{Requested: len(segments)}

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			res.Err = err
			logger.Warn("commit interrupted", "created", res.Created, "remaining", len(segments)-i, "error", err)
			break
		}

		ok, err := create(ctx, c, seg)
		if err == nil && !ok {
			err = ErrDeclined
		}
		if err != nil {
			if res.Failures == nil {
				res.Failures = make(map[int]error)
			}
			res.Failures[i] = err
			logger.Error("failed to create segment", "segment", i+1, "kind", seg.Kind, "error", err)
			continue
		}
		res.Created++
	}

	logger.Debug("commit finished", "requested", res.Requested, "created", res.Created)
	return res
}

func create(ctx context.Context, c Creator, seg transition.Segment) (bool, error) {
	if seg.Kind == transition.SegmentArc {
		return c.CreateArc(ctx, ArcSpec{
			Net:   seg.Net,
			Layer: seg.Layer,
			Start: seg.Start,
			End:   seg.End,
			Sweep: seg.Sweep,
			Width: seg.Width,
			Mode:  InteractionNone,
		})
	}
	return c.CreateLine(ctx, LineSpec{
		Net:   seg.Net,
		Layer: seg.Layer,
		Start: seg.Start,
		End:   seg.End,
		Width: seg.Width,
	})
}
