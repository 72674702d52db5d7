package notation

import "errors"

// ErrEmptyScore is returned by Unwind when the MeasureView has no
// measures at all; the resulting RepeatList is left empty rather than
// treated as a fatal condition.
var ErrEmptyScore = errors.New("notation: score has no measures")
