package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines is a Bounds over plain content strings
type lines []string

func (l lines) Len() int { return len(l) }

func (l lines) Line(row int) (string, bool) {
	if row < 0 || row >= len(l) {
		return "", false
	}
	return l[row], true
}

func (l lines) LineLen(row int) int {
	if row < 0 || row >= len(l) {
		return 0
	}
	return len(l[row])
}

func numbered(n int) lines {
	out := make(lines, n)
	for i := range out {
		out[i] = "line"
	}
	return out
}

func TestPositionOrdering(t *testing.T) {
	a := Position{Col: 5, Row: 1}
	b := Position{Col: 0, Row: 2}

	lo, hi := Ordered(b, a)
	assert.Equal(t, a, lo)
	assert.Equal(t, b, hi)

	lo, hi = Ordered(a, b)
	assert.Equal(t, a, lo)
	assert.Equal(t, b, hi)

	assert.True(t, Position{Col: 1, Row: 0}.Less(Position{Col: 2, Row: 0}))
	assert.False(t, a.Less(a))
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 6, GutterWidth(0))
	assert.Equal(t, 6, GutterWidth(9999))
	assert.Equal(t, 7, GutterWidth(10000))
}

func TestMove_ClampsWithinLine(t *testing.T) {
	buf := lines{"ab", "cd"}
	cv := New()

	pos, err := cv.Move(Motion{Kind: Relative, N: 5}, true, buf)
	require.NoError(t, err)
	assert.Equal(t, Position{Col: 1, Row: 0}, pos)

	pos, err = cv.Move(Motion{Kind: Relative, N: -9}, true, buf)
	require.NoError(t, err)
	assert.Equal(t, Position{Col: 0, Row: 0}, pos)
}

func TestMove_LineStartAndEnd(t *testing.T) {
	buf := lines{"hello", "", "x"}
	cv := New()

	pos, _ := cv.Move(Motion{Kind: End}, true, buf)
	assert.Equal(t, 4, pos.Col)

	pos, _ = cv.Move(Motion{Kind: Start}, true, buf)
	assert.Equal(t, 0, pos.Col)

	pos, _ = cv.Move(Motion{Kind: End}, false, buf)
	assert.Equal(t, Position{Col: 0, Row: 2}, pos)

	pos, _ = cv.Move(Motion{Kind: Start}, false, buf)
	assert.Equal(t, Position{Col: 0, Row: 0}, pos)
}

func TestMove_AcrossRowsClampsColumn(t *testing.T) {
	buf := lines{"a long line", "", "mid"}
	cv := New()
	cv.SetCursor(Position{Col: 8, Row: 0})

	pos, err := cv.Move(Motion{Kind: Relative, N: 1}, false, buf)
	require.NoError(t, err)
	assert.Equal(t, Position{Col: 0, Row: 1}, pos)

	pos, _ = cv.Move(Motion{Kind: Relative, N: 100}, false, buf)
	assert.Equal(t, Position{Col: 0, Row: 2}, pos)

	pos, _ = cv.Move(Motion{Kind: Relative, N: -100}, false, buf)
	assert.Equal(t, 0, pos.Row)
}

func TestMove_EmptyBuffer(t *testing.T) {
	cv := New()
	pos, err := cv.Move(Motion{Kind: Relative, N: 1}, false, lines{})
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, Position{}, pos)
}

func TestMove_CursorAlwaysInBounds(t *testing.T) {
	buf := lines{"abc", "", "defgh", "i"}
	cv := New()
	motions := []struct {
		m      Motion
		inLine bool
	}{
		{Motion{Kind: Relative, N: 3}, true},
		{Motion{Kind: Relative, N: 2}, false},
		{Motion{Kind: End}, true},
		{Motion{Kind: Relative, N: -1}, false},
		{Motion{Kind: Relative, N: 7}, false},
		{Motion{Kind: Relative, N: -3}, true},
		{Motion{Kind: Start}, false},
		{Motion{Kind: End}, false},
	}

	for _, step := range motions {
		pos, err := cv.Move(step.m, step.inLine, buf)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pos.Row, 0)
		assert.Less(t, pos.Row, buf.Len())
		assert.LessOrEqual(t, pos.Col, max(0, buf.LineLen(pos.Row)-1))
	}
}

func TestMove_StepsOverWholeRunes(t *testing.T) {
	buf := lines{"éa世", "x"}
	cv := New()

	pos, err := cv.Move(Motion{Kind: Relative, N: 1}, true, buf)
	require.NoError(t, err)
	assert.Equal(t, 2, pos.Col)

	pos, err = cv.Move(Motion{Kind: End}, true, buf)
	require.NoError(t, err)
	assert.Equal(t, 3, pos.Col, "last rune starts at byte 3")

	pos, err = cv.Move(Motion{Kind: Relative, N: -2}, true, buf)
	require.NoError(t, err)
	assert.Equal(t, 0, pos.Col)
}

func TestClamp_SnapsToRuneStart(t *testing.T) {
	buf := lines{"aé", "é"}
	cv := New()

	cv.SetCursor(Position{Col: 2, Row: 0})
	cv.Clamp(buf, false)
	assert.Equal(t, Position{Col: 1, Row: 0}, cv.Cursor())

	cv.SetCursor(Position{Col: 2, Row: 0})
	pos, err := cv.Move(Motion{Kind: Relative, N: 1}, false, buf)
	require.NoError(t, err)
	assert.Equal(t, Position{Col: 0, Row: 1}, pos)
}

func TestPageScroll_Clamps(t *testing.T) {
	buf := numbered(100)
	cv := New()
	cv.Update(10, 80, buf, false)

	cv.PageScroll(1, buf.Len())
	assert.Equal(t, 10, cv.View().VOffset)
	assert.True(t, cv.View().Scrolling)

	cv.PageScroll(1_000_000, buf.Len())
	assert.Equal(t, 90, cv.View().VOffset)

	cv.PageScroll(-1_000_000, buf.Len())
	assert.Equal(t, 0, cv.View().VOffset)
}

func TestPageScroll_ShortDocument(t *testing.T) {
	buf := numbered(3)
	cv := New()
	cv.Update(10, 80, buf, false)

	cv.PageScroll(2, buf.Len())
	assert.Equal(t, 0, cv.View().VOffset)
}

func TestUpdate_ScrollDragsCursor(t *testing.T) {
	buf := numbered(100)
	cv := New()
	cv.Update(10, 80, buf, false)

	cv.PageScroll(2, buf.Len())
	changed := cv.Update(10, 80, buf, false)
	assert.True(t, changed)
	assert.Equal(t, 20, cv.Cursor().Row)
	assert.Equal(t, 20, cv.View().VOffset)
	assert.False(t, cv.View().Scrolling)

	cv.PageScroll(-1, buf.Len())
	cv.Update(10, 80, buf, false)
	assert.Equal(t, 19, cv.Cursor().Row)
	assert.Equal(t, 10, cv.View().VOffset)
}

func TestUpdate_MotionCentresCursor(t *testing.T) {
	buf := numbered(100)
	cv := New()
	cv.Update(10, 80, buf, false)

	cv.SetCursor(Position{Row: 50})
	require.True(t, cv.Update(10, 80, buf, false))
	assert.Equal(t, 45, cv.View().VOffset)

	cv.SetCursor(Position{Row: 2})
	cv.Update(10, 80, buf, false)
	assert.Equal(t, 0, cv.View().VOffset)
	assert.Equal(t, 2, cv.Cursor().Row)
}

func TestUpdate_StableTickReportsNoChange(t *testing.T) {
	buf := numbered(5)
	cv := New()
	cv.Update(10, 80, buf, false)
	assert.False(t, cv.Update(10, 80, buf, false))
	assert.True(t, cv.Update(12, 80, buf, false))
}

func TestReconcile_HorizontalOffsetFollowsColumn(t *testing.T) {
	buf := lines{string(make([]byte, 200))}
	in := Input{
		Cursor: Position{Col: 150},
		Height: 5,
		Width:  46,
		Lines:  buf,
	}

	out := Reconcile(in)
	require.Equal(t, 6, out.View.Gutter)
	assert.Equal(t, 150-40/2, out.View.HOffset)
	assert.True(t, out.Changed)

	in.View = out.View
	in.Cursor = Position{Col: 3}
	out = Reconcile(in)
	assert.Equal(t, 3, out.View.HOffset)
}

func TestReconcile_HorizontalWindowCountsDrawnCells(t *testing.T) {
	// ten tabs draw 40 cells although the cursor sits at byte 10
	buf := lines{"\t\t\t\t\t\t\t\t\t\tx"}
	out := Reconcile(Input{
		Cursor:   Position{Col: 10},
		Height:   5,
		Width:    26,
		Lines:    buf,
		TabWidth: 4,
	})
	require.Equal(t, 20, out.View.ContentWidth())
	assert.Equal(t, 8, out.View.HOffset)

	wide := lines{"世界世界世界世界世界x"}
	out = Reconcile(Input{
		Cursor: Position{Col: 30},
		Height: 5,
		Width:  16,
		Lines:  wide,
	})
	require.Equal(t, 10, out.View.ContentWidth())
	assert.Equal(t, 24, out.View.HOffset, "window starts on a rune boundary")
}

func TestReconcile_ClampsCursorToDocument(t *testing.T) {
	out := Reconcile(Input{
		Cursor: Position{Col: 9, Row: 7},
		Height: 20,
		Width:  80,
		Lines:  lines{"abc", "de"},
	})
	assert.Equal(t, Position{Col: 1, Row: 1}, out.Cursor)

	out = Reconcile(Input{
		Cursor: Position{Col: 9, Row: 1},
		Height: 20,
		Width:  80,
		Lines:  lines{"abc", "de"},
		Insert: true,
	})
	assert.Equal(t, Position{Col: 2, Row: 1}, out.Cursor)
}

func TestClamp_PullsMarkBack(t *testing.T) {
	cv := New()
	cv.SetCursor(Position{Col: 4, Row: 3})
	cv.SetMark(Position{Col: 10, Row: 5})

	cv.Clamp(lines{"abc", "defg"}, false)
	assert.Equal(t, Position{Col: 3, Row: 1}, cv.Cursor())
	mark, ok := cv.Mark()
	require.True(t, ok)
	assert.Equal(t, Position{Col: 4, Row: 1}, mark)

	cv.ClearMark()
	_, ok = cv.Mark()
	assert.False(t, ok)
}
