package draw

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	clearScreenSeq = "\033[H\033[2J"
	hideCursorSeq  = "\033[?25l"
	showCursorSeq  = "\033[?25h"

	// ResetStyle is the SGR sequence that restores default colors.
	ResetStyle = "\033[0m"
)

// maxChunkSize is the largest single write to the output, sized to fit one
// TCP segment so SSH sessions see a steady stream instead of bursts.
const maxChunkSize = 1400

// writeChunks writes data to w in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChunkWriter collects one frame of terminal output (canvas cells and text
// overlays) and sends it with Flush. Positions passed to it are 1-based and
// relative to the render area; the centering offset is added here.
type ChunkWriter struct {
	out    io.Writer
	buf    bytes.Buffer
	num    [20]byte
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that sends frames to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{out: w, offCol: offsetCol, offRow: offsetRow}
}

// SetOffset updates the render area offset after a terminal resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write appends raw output; Canvas.Render writes through it with absolute positions.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends raw output.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString(clearScreenSeq)
}

// moveTo appends a cursor position sequence for a render area position.
func (cw *ChunkWriter) moveTo(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// WriteAt writes s in the default color starting at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveTo(col, row)
	cw.buf.WriteString(s)
}

// WriteColored writes s in color c starting at (col, row), then resets the style.
func (cw *ChunkWriter) WriteColored(col, row int, s string, c color.NRGBA) {
	cw.moveTo(col, row)
	cw.buf.WriteString(Foreground(c))
	cw.buf.WriteString(s)
	cw.buf.WriteString(ResetStyle)
}

// Flush sends the collected frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	defer cw.buf.Reset()
	return writeChunks(cw.out, cw.buf.Bytes())
}

// Foreground returns the 24-bit SGR sequence selecting c as the text color.
func Foreground(c color.NRGBA) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc asks the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreenSeq)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursorSeq)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursorSeq)
}
