package proof

import "fmt"

// UnterminatedCommentError reports a comment opened at Offset with no
// matching close marker before end of input.
type UnterminatedCommentError struct {
	Offset int
}

func (e *UnterminatedCommentError) Error() string {
	return fmt.Sprintf("comment opened at offset %d is never closed", e.Offset)
}

// StripComments blanks every (* ... *) span out of src, including spans that
// cross line boundaries. Comments nest. Every comment byte except newlines is
// replaced by a space so that all byte offsets, line numbers, and columns of
// the surviving text are unchanged.
func StripComments(src string) (string, error) {
	out := []byte(src)
	depth := 0
	openOff := 0

	for i := 0; i < len(src); i++ {
		switch {
		case i+1 < len(src) && src[i] == '(' && src[i+1] == '*':
			if depth == 0 {
				openOff = i
			}
			depth++
			out[i], out[i+1] = ' ', ' '
			i++
		case depth > 0 && i+1 < len(src) && src[i] == '*' && src[i+1] == ')':
			depth--
			out[i], out[i+1] = ' ', ' '
			i++
		case depth > 0 && src[i] != '\n':
			out[i] = ' '
		}
	}

	if depth > 0 {
		return "", &UnterminatedCommentError{Offset: openOff}
	}
	return string(out), nil
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
