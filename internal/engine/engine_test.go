package engine

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/command"
	"github.com/willibrandon/hire/internal/viewport"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// EngineTestSuite drives the engine with key presses over an in-memory file
type EngineTestSuite struct {
	suite.Suite
	fs        afero.Fs
	clipboard *fakeClipboard
	engine    *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
	s.clipboard = &fakeClipboard{}
}

// open loads content as /doc.txt and builds an engine over it
func (s *EngineTestSuite) open(content string, opts ...Option) *Engine {
	s.Require().NoError(afero.WriteFile(s.fs, "/doc.txt", []byte(content), 0644))
	buf := buffer.New(s.fs)
	s.Require().NoError(buf.Load("/doc.txt"))

	opts = append([]Option{WithClipboard(s.clipboard)}, opts...)
	s.engine = New(buf, command.Default(), opts...)
	return s.engine
}

// typeKeys presses every rune of keys as a character key and requires success
func (s *EngineTestSuite) typeKeys(keys string) {
	for _, r := range keys {
		s.Require().NoError(s.engine.HandleKey(command.Char(r)), "key %q", r)
	}
}

func (s *EngineTestSuite) press(code command.Code) error {
	return s.engine.HandleKey(command.Named(code))
}

func (s *EngineTestSuite) lines() []string {
	return s.engine.Buffer().Lines()
}

func (s *EngineTestSuite) TestNewLineOnEmptyDocument() {
	e := s.open("")

	s.typeKeys("O")
	s.Equal([]string{"\n"}, s.lines())
	s.Equal(viewport.Position{}, e.Cursor())
	s.Equal(ModeInsert, e.Mode())
	s.True(e.Dirty())
}

func (s *EngineTestSuite) TestQuitDirtyAsksFirst() {
	e := s.open("a\n")
	s.typeKeys("x")
	s.Require().True(e.Dirty())

	s.typeKeys("q")
	s.Equal(PendingQuit, e.Pending().Kind)
	s.False(e.Pending().Confirmed)
	s.False(e.Exiting())
	s.NotEmpty(e.Ask())

	s.typeKeys("y")
	s.True(e.Exiting())
	s.Empty(e.Ask())
}

func (s *EngineTestSuite) TestQuitDirtyCancelled() {
	e := s.open("a\n")
	s.typeKeys("xqn")

	s.Equal(PendingNone, e.Pending().Kind)
	s.False(e.Exiting())
	s.Empty(e.Ask())
}

func (s *EngineTestSuite) TestQuitClean() {
	e := s.open("a\n")
	s.typeKeys("q")
	s.True(e.Exiting())
}

func (s *EngineTestSuite) TestQuitCustomConfirmKey() {
	e := s.open("a\n", WithConfirmKey('!'))
	s.typeKeys("xqy")
	s.False(e.Exiting())

	s.typeKeys("q!")
	s.True(e.Exiting())
}

func (s *EngineTestSuite) TestExecuteQuit() {
	e := s.open("a\n")
	s.Require().NoError(e.Execute(command.Quit{}))
	s.True(e.Exiting())
}

func (s *EngineTestSuite) TestSearchThroughPrompt() {
	e := s.open("hello\n")

	s.typeKeys("/")
	text, _, ok := e.Prompt()
	s.Require().True(ok)
	s.Empty(text)
	s.Equal(PendingSearch, e.Pending().Kind)

	s.typeKeys("l")
	s.Require().NoError(s.press(command.CodeEnter))
	_, _, ok = e.Prompt()
	s.False(ok)
	s.Equal(PendingNone, e.Pending().Kind)
	s.Equal(viewport.Position{Col: 2, Row: 0}, e.Cursor())

	selected, total, ok := e.SearchSummary()
	s.True(ok)
	s.Equal(1, selected)
	s.Equal(2, total)

	s.typeKeys("n")
	s.Equal(3, e.Cursor().Col)
	s.typeKeys("n")
	s.Equal(2, e.Cursor().Col)
	s.typeKeys("N")
	s.Equal(3, e.Cursor().Col)
}

func (s *EngineTestSuite) TestSearchPromptEditing() {
	e := s.open("abc\n")

	s.typeKeys("/xb")
	s.Require().NoError(s.press(command.CodeLeft))
	s.Require().NoError(s.press(command.CodeBackspace))
	text, cursor, _ := e.Prompt()
	s.Equal("b", text)
	s.Equal(0, cursor)

	s.Require().NoError(s.press(command.CodeEsc))
	_, _, ok := e.Prompt()
	s.False(ok)
	_, _, ok = e.SearchSummary()
	s.False(ok)
	s.Equal(PendingNone, e.Pending().Kind)
}

func (s *EngineTestSuite) TestSearchJumpWithoutMatches() {
	e := s.open("abc\n")
	s.typeKeys("ln")
	s.Equal(1, e.Cursor().Col)
}

func (s *EngineTestSuite) TestSearchFollowsEdits() {
	e := s.open("a a\n")
	s.typeKeys("/a")
	s.Require().NoError(s.press(command.CodeEnter))
	s.Require().Equal(2, e.Search().Len())

	s.typeKeys("x")
	s.Equal([]string{" a\n"}, s.lines())
	s.Equal(1, e.Search().Len())
	s.Equal(-1, e.Search().Selected(), "the selected match was deleted")
	sel, total, ok := e.SearchSummary()
	s.True(ok)
	s.Equal(0, sel)
	s.Equal(1, total)
}

func (s *EngineTestSuite) TestDeleteLine() {
	e := s.open("a\nb\nc\n")

	s.typeKeys("G")
	s.typeKeys("d")
	s.Equal(PendingDelete, e.Pending().Kind)
	s.typeKeys("d")

	s.Equal([]string{"a\n", "b\n"}, s.lines())
	s.Equal(1, e.Cursor().Row)
	s.Equal(PendingNone, e.Pending().Kind)
}

func (s *EngineTestSuite) TestDeleteWrongKeyQueuesError() {
	e := s.open("a\nb\n")

	s.typeKeys("d")
	err := e.HandleKey(command.Char('x'))
	s.ErrorIs(err, ErrInvalidCommand)
	s.Equal(PendingConfirmError, e.Pending().Kind)

	msg, ok := e.CurrentError()
	s.True(ok)
	s.Equal("[Error]: Invalid Command: x!", msg)

	// the acknowledging key does nothing else
	s.typeKeys("j")
	s.Equal(PendingNone, e.Pending().Kind)
	s.Equal(0, e.Cursor().Row)
	_, ok = e.CurrentError()
	s.False(ok)
	s.Equal([]string{"a\n", "b\n"}, s.lines())
}

func (s *EngineTestSuite) TestUnboundKey() {
	e := s.open("a\n")
	err := e.HandleKey(command.Char('z'))
	s.ErrorIs(err, ErrInvalidCommand)
	s.Equal(KindInvalidCommand, Classify(err))
}

func (s *EngineTestSuite) TestErrorQueueIsFIFO() {
	e := s.open("a\n")
	e.Report(Specific("first"))
	e.Report(Specific("second"))

	msg, _ := e.CurrentError()
	s.Equal("[Error]: first!", msg)

	s.typeKeys("j")
	s.Equal(PendingConfirmError, e.Pending().Kind)
	msg, _ = e.CurrentError()
	s.Equal("[Error]: second!", msg)

	s.typeKeys("j")
	s.Equal(PendingNone, e.Pending().Kind)
}

func (s *EngineTestSuite) TestMarkRegionDeleteIgnoresOrder() {
	// mark first, cursor after
	s.open("abcdef\nghijkl\n")
	s.typeKeys("lmmjlld")
	forward := s.lines()
	forwardCursor := s.engine.Cursor()
	_, marked := s.engine.Mark()
	s.False(marked)

	// cursor first, mark after
	s.SetupTest()
	s.open("abcdef\nghijkl\n")
	s.typeKeys("jlllmmkhhd")

	s.Equal([]string{"akl\n"}, forward)
	s.Equal(forward, s.lines())
	s.Equal(viewport.Position{Col: 1, Row: 0}, forwardCursor)
	s.Equal(forwardCursor, s.engine.Cursor())
}

func (s *EngineTestSuite) TestMarkRegionThroughLineEnd() {
	// an empty row ends the span at its terminator, joining the next row
	s.open("ab\n\ncd\n")
	s.typeKeys("lmmjd")
	s.Equal([]string{"acd\n"}, s.lines())
}

func (s *EngineTestSuite) TestMarkWrongKey() {
	e := s.open("a\n")
	s.typeKeys("m")
	s.ErrorIs(e.HandleKey(command.Char('x')), ErrInvalidCommand)
	_, ok := e.Mark()
	s.False(ok)
}

func (s *EngineTestSuite) TestMarkCancel() {
	e := s.open("a\n")
	s.typeKeys("mm")
	_, ok := e.Mark()
	s.Require().True(ok)

	s.typeKeys("M")
	_, ok = e.Mark()
	s.False(ok)
}

func (s *EngineTestSuite) TestChangeLine() {
	e := s.open("abc\ndef\n")

	s.typeKeys("c")
	s.Equal(PendingChange, e.Pending().Kind)
	s.typeKeys("c")
	s.Equal([]string{"def\n"}, s.lines())
	s.Equal(ModeInsert, e.Mode())
	s.Equal(viewport.Position{}, e.Cursor())

	s.typeKeys("x")
	s.Equal([]string{"xdef\n"}, s.lines())
	s.Require().NoError(s.press(command.CodeEsc))
	s.Equal(ModeNormal, e.Mode())
}

func (s *EngineTestSuite) TestChangeLastRowClampsToNewLastRow() {
	e := s.open("a\nb\n")

	s.typeKeys("jcc")
	s.Equal([]string{"a\n"}, s.lines())
	s.Equal(ModeInsert, e.Mode())
	s.Equal(viewport.Position{Row: 0, Col: 0}, e.Cursor())
}

func (s *EngineTestSuite) TestChangeOnlyRowLeavesOpenRow() {
	e := s.open("only\r\n")

	s.typeKeys("cc")
	s.Equal([]string{"\r\n"}, s.lines())
	s.Equal(ModeInsert, e.Mode())

	s.typeKeys("z")
	s.Equal([]string{"z\r\n"}, s.lines())
}

func (s *EngineTestSuite) TestChangeWrongKeyQueuesError() {
	e := s.open("abc\n")

	s.typeKeys("c")
	s.Require().Error(e.HandleKey(command.Char('x')))
	s.Equal([]string{"abc\n"}, s.lines())
	s.Equal(ModeNormal, e.Mode())
}

func (s *EngineTestSuite) TestChangeMarkedRegion() {
	e := s.open("hello world\n")

	s.typeKeys("mmllllc")
	s.Equal([]string{" world\n"}, s.lines())
	s.Equal(ModeInsert, e.Mode())
	s.Equal(viewport.Position{}, e.Cursor())
}

func (s *EngineTestSuite) TestInsertModeEditing() {
	e := s.open("ab\n")

	s.typeKeys("A")
	s.Equal(2, e.Cursor().Col)
	s.typeKeys("c")
	s.Equal([]string{"abc\n"}, s.lines())

	s.Require().NoError(s.press(command.CodeEnter))
	s.Equal([]string{"abc\n", "\n"}, s.lines())
	s.Equal(viewport.Position{Col: 0, Row: 1}, e.Cursor())

	s.typeKeys("d")
	s.Require().NoError(s.press(command.CodeBackspace))
	s.Equal([]string{"abc\n", "\n"}, s.lines())

	s.Require().NoError(s.press(command.CodeBackspace))
	s.Equal([]string{"abc\n"}, s.lines())
	s.Equal(viewport.Position{Col: 3, Row: 0}, e.Cursor())

	// ignored in insert mode
	s.Require().NoError(s.press(command.CodeUp))
	s.Equal([]string{"abc\n"}, s.lines())

	s.Require().NoError(s.press(command.CodeEsc))
	s.Equal(ModeNormal, e.Mode())
	s.Equal(2, e.Cursor().Col)
}

func (s *EngineTestSuite) TestSplitKeepsCRLF() {
	s.open("abcd\r\n")
	s.typeKeys("ll")
	s.typeKeys("i")
	s.Require().NoError(s.press(command.CodeEnter))
	s.Equal([]string{"ab\r\n", "cd\r\n"}, s.lines())
}

func (s *EngineTestSuite) TestTabInsertion() {
	s.open("ab\n")
	s.typeKeys("i")
	s.Require().NoError(s.press(command.CodeTab))
	s.Equal([]string{"\tab\n"}, s.lines())

	s.SetupTest()
	s.open("ab\n", WithTabIndent(true), WithTabWidth(2))
	s.typeKeys("i")
	s.Require().NoError(s.press(command.CodeTab))
	s.Equal([]string{"  ab\n"}, s.lines())
	s.Equal(2, s.engine.Cursor().Col)
}

func (s *EngineTestSuite) TestEditingEmptyDocument() {
	e := s.open("")

	err := e.HandleKey(command.Char('i'))
	s.Require().Error(err)
	s.Equal(KindSpecific, Classify(err))
	msg, _ := e.CurrentError()
	s.Equal("[Error]: cannot edit an empty file!", msg)
	s.Equal(ModeNormal, e.Mode())

	s.typeKeys("j")
	s.Error(e.HandleKey(command.Char('x')))
}

func (s *EngineTestSuite) TestMotionOnEmptyDocument() {
	e := s.open("")
	err := e.HandleKey(command.Char('j'))
	s.Require().Error(err)
	s.Equal(viewport.Position{}, e.Cursor())
}

func (s *EngineTestSuite) TestReplaceChar() {
	e := s.open("abc\n")

	s.typeKeys("lr")
	s.Equal(PendingReplaceChar, e.Pending().Kind)
	s.typeKeys("z")
	s.Equal([]string{"azc\n"}, s.lines())

	s.typeKeys("r")
	s.ErrorIs(e.HandleKey(command.Char('é')), ErrInvalidCommand)
	s.Equal([]string{"azc\n"}, s.lines())
}

func (s *EngineTestSuite) TestDeleteCharKeepsTerminator() {
	e := s.open("ab\nc\n")
	s.typeKeys("lxx")
	s.Equal([]string{"\n", "c\n"}, s.lines())
	s.Equal(0, e.Cursor().Col)

	// nothing left to delete on the row
	s.typeKeys("x")
	s.Equal([]string{"\n", "c\n"}, s.lines())
}

func (s *EngineTestSuite) TestMultiByteRunesStayWhole() {
	e := s.open("éa\n")

	s.typeKeys("l")
	s.Equal(2, e.Cursor().Col)
	s.typeKeys("x")
	s.Equal([]string{"é\n"}, s.lines())
	s.Equal(0, e.Cursor().Col)

	s.typeKeys("rz")
	s.Equal([]string{"z\n"}, s.lines())

	e = s.open("éa\n")
	s.typeKeys("liz")
	s.Require().NoError(s.press(command.CodeEsc))
	s.Equal([]string{"éza\n"}, s.lines())

	s.typeKeys("s")
	data, err := afero.ReadFile(s.fs, "/doc.txt")
	s.Require().NoError(err)
	s.True(utf8.Valid(data))
}

func (s *EngineTestSuite) TestNewLineBelowLastRowWithoutTerminator() {
	e := s.open("ab")
	s.typeKeys("o")
	s.Equal([]string{"ab\n", ""}, s.lines())
	s.Equal(viewport.Position{Row: 1}, e.Cursor())

	s.typeKeys("c")
	s.Equal([]string{"ab\n", "c"}, s.lines())
}

func (s *EngineTestSuite) TestNewLineAbove() {
	e := s.open("a\nb\n")
	s.typeKeys("jO")
	s.Equal([]string{"a\n", "\n", "b\n"}, s.lines())
	s.Equal(viewport.Position{Row: 1}, e.Cursor())
	s.Equal(ModeInsert, e.Mode())
}

func (s *EngineTestSuite) TestEscapeClearsMarkBeforeSearch() {
	e := s.open("abc\n")
	s.typeKeys("/b")
	s.Require().NoError(s.press(command.CodeEnter))
	s.typeKeys("mm")

	s.Require().NoError(s.press(command.CodeEsc))
	_, marked := e.Mark()
	s.False(marked)
	_, _, searched := e.SearchSummary()
	s.True(searched)

	s.Require().NoError(s.press(command.CodeEsc))
	_, _, searched = e.SearchSummary()
	s.False(searched)
}

func (s *EngineTestSuite) TestSave() {
	e := s.open("one\n")
	s.typeKeys("xs")

	s.False(e.Dirty())
	s.Equal(`"/doc.txt" 3 B written`, e.Message())

	data, err := afero.ReadFile(s.fs, "/doc.txt")
	s.Require().NoError(err)
	s.Equal("ne\n", string(data))
}

func (s *EngineTestSuite) TestSaveFailureKeepsDirty() {
	base := afero.NewMemMapFs()
	s.Require().NoError(afero.WriteFile(base, "/doc.txt", []byte("one\n"), 0644))
	buf := buffer.New(afero.NewReadOnlyFs(base))
	s.Require().NoError(buf.Load("/doc.txt"))
	e := New(buf, nil)

	s.Require().NoError(e.HandleKey(command.Char('x')))
	err := e.HandleKey(command.Char('s'))
	s.Require().Error(err)
	s.Equal(KindIO, Classify(err))
	s.True(e.Dirty())

	msg, _ := e.CurrentError()
	s.True(strings.HasPrefix(msg, "[IO Error]: "), msg)
	s.Contains(msg, "\nCause: ")
	s.Equal([]string{"ne\n"}, buf.Lines())
}

func (s *EngineTestSuite) TestYank() {
	e := s.open("abc\ndef\n")

	s.typeKeys("y")
	s.Equal("abc\n", s.clipboard.text)
	s.Equal("yanked 4 characters", e.Message())

	s.typeKeys("mmjly")
	s.Equal("abc\nde", s.clipboard.text)
	_, marked := e.Mark()
	s.False(marked)
	s.Equal([]string{"abc\n", "def\n"}, s.lines())
}

func (s *EngineTestSuite) TestYankFailures() {
	s.clipboard.err = errors.New("no display")
	e := s.open("abc\n")
	s.Error(e.HandleKey(command.Char('y')))

	buf := buffer.New(s.fs)
	s.Require().NoError(buf.Load("/doc.txt"))
	bare := New(buf, nil)
	err := bare.HandleKey(command.Char('y'))
	s.Require().Error(err)
	s.Equal("[Error]: clipboard unavailable!", Describe(err))
}

func (s *EngineTestSuite) TestPageScrollDragsCursor() {
	e := s.open(strings.Repeat("line\n", 100))
	e.Update(10, 80)

	s.typeKeys("f")
	s.True(e.TakeRefresh())
	s.True(e.Update(10, 80))
	s.Equal(10, e.View().VOffset)
	s.Equal(10, e.Cursor().Row)

	s.typeKeys("G")
	e.Update(10, 80)
	s.Equal(99, e.Cursor().Row)
	s.Equal(94, e.View().VOffset)
}

func (s *EngineTestSuite) TestTakeRefresh() {
	e := s.open("abc\n")
	s.True(e.TakeRefresh())
	s.False(e.TakeRefresh())

	s.typeKeys("l")
	s.False(e.TakeRefresh())

	s.typeKeys("x")
	s.True(e.TakeRefresh())
}

func (s *EngineTestSuite) TestModeString() {
	s.Equal("NORMAL", ModeNormal.String())
	s.Equal("INSERT", ModeInsert.String())
	s.Equal("confirm_error", PendingConfirmError.String())
}
