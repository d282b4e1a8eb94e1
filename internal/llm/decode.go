package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when model output contains no balanced JSON block.
var ErrNoJSON = errors.New("no JSON block in model output")

// Decoded is the outcome of pulling structured data out of model text. Exactly
// one of the two states holds: Parsed() with Value set, or malformed with Err
// set. Raw always keeps the model text for logging.
type Decoded[T any] struct {
	Value T
	Raw   string
	Err   error
}

// Parsed reports whether Value holds decoded data.
func (d Decoded[T]) Parsed() bool {
	return d.Err == nil
}

// DecodeObject decodes the first balanced {...} block in text into T.
func DecodeObject[T any](text string) Decoded[T] {
	return decodeBlock[T](text, '{', '}')
}

// DecodeArray decodes the first balanced [...] block in text into T.
func DecodeArray[T any](text string) Decoded[T] {
	return decodeBlock[T](text, '[', ']')
}

func decodeBlock[T any](text string, open, close byte) Decoded[T] {
	out := Decoded[T]{Raw: text}

	block, ok := FirstBalanced(text, open, close)
	if !ok {
		out.Err = ErrNoJSON
		return out
	}

	if err := json.Unmarshal([]byte(block), &out.Value); err != nil {
		out.Err = err
	}
	return out
}

// FirstBalanced returns the first substring of text that starts with open and
// ends at its matching close. Brackets inside JSON string literals are
// ignored. Models often wrap JSON in prose or code fences; this tolerates both.
func FirstBalanced(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	for start != -1 {
		if end, ok := matchClose(text, start, open, close); ok {
			return text[start : end+1], true
		}
		next := strings.IndexByte(text[start+1:], open)
		if next == -1 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchClose(text string, start int, open, close byte) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
