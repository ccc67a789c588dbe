package incjson

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldDelta is the newly revealed portion of one field's value, already
// unescaped. Delta is incremental: concatenating the deltas returned for a
// given key across Feed calls reconstructs that key's full value.
type FieldDelta struct {
	Key   string
	Delta string
}

// scanMode tracks which part of the object the scan position is in.
// Exactly one mode holds at a time.
type scanMode int

const (
	modeOutside scanMode = iota // between strings: braces, colons, commas, whitespace
	modeKey                     // inside a key string
	modeValue                   // inside a value string
)

// escapeTable maps the character following a backslash to its literal
// replacement. Escapes not listed here (other than 'u') pass through
// unchanged; this is deliberately narrower than full JSON.
var escapeTable = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'b':  '\b',
	'f':  '\f',
}

// Parser incrementally decodes a single flat JSON object fed to it in
// arbitrary fragments. Each Feed call scans only the newly appended region,
// so the cost of a feed is proportional to the fragment, not the buffer.
//
// A Parser is bound to exactly one JSON object. Call Reset before reusing it
// for an unrelated object. Feeding text past the closing brace is ignored.
// Parser is not safe for concurrent use.
type Parser struct {
	buffer strings.Builder // full text fed so far, append-only
	cursor int             // index of the next unprocessed byte

	currentKey strings.Builder
	hasKey     bool // at least one key has been opened
	keySettled bool // current key closed, its value not yet closed

	mode          scanMode
	pendingEscape bool    // previous byte was an unconsumed backslash
	pendingHex    [4]byte // accumulated digits of an in-progress \uXXXX
	pendingHexLen int
	collectingHex bool

	delta   strings.Builder // value text revealed so far for the current key
	results []FieldDelta    // deltas completed during the current Feed call
}

// NewParser returns a Parser in its initial state.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends chunk to the internal buffer and scans the new region.
// It returns one FieldDelta per field whose value gained text during this
// call: usually zero entries (the chunk was whitespace, punctuation, a key,
// or an escape sequence still in progress) or one, and more only when a
// single chunk spans the end of one field and the start of another.
//
// Feed never fails. Malformed or out-of-order input degrades to best-effort
// passthrough and never corrupts deltas already attributed to other keys.
func (parser *Parser) Feed(chunk string) []FieldDelta {
	parser.buffer.WriteString(chunk)
	parser.results = nil

	text := parser.buffer.String()
	for ; parser.cursor < len(text); parser.cursor++ {
		parser.step(text[parser.cursor])
	}

	parser.flushDelta()
	return parser.results
}

// Reset returns the parser to its initial state so it can decode a new,
// unrelated JSON object.
func (parser *Parser) Reset() {
	parser.buffer.Reset()
	parser.cursor = 0
	parser.currentKey.Reset()
	parser.hasKey = false
	parser.keySettled = false
	parser.mode = modeOutside
	parser.pendingEscape = false
	parser.pendingHexLen = 0
	parser.collectingHex = false
	parser.delta.Reset()
	parser.results = nil
}

// flushDelta moves accumulated value text into the results list under the
// current key. Called at the end of a feed and before a new key opens, so a
// delta is never attributed to the wrong key.
func (parser *Parser) flushDelta() {
	if !parser.hasKey || parser.delta.Len() == 0 {
		return
	}
	parser.results = append(parser.results, FieldDelta{
		Key:   parser.currentKey.String(),
		Delta: parser.delta.String(),
	})
	parser.delta.Reset()
}

// step advances the state machine by one byte. Scanning bytes rather than
// runes is safe: every structural character ('"', '\\') is ASCII and cannot
// occur inside a multi-byte UTF-8 sequence, and non-escape value bytes are
// copied through verbatim, so runes split across chunk boundaries reassemble
// in the caller's concatenation.
func (parser *Parser) step(c byte) {
	// An in-progress \uXXXX escape consumes the next four bytes as hex digits.
	if parser.collectingHex {
		parser.pendingHex[parser.pendingHexLen] = c
		parser.pendingHexLen++
		if parser.pendingHexLen == 4 {
			parser.resolveUnicodeEscape()
		}
		return
	}

	if parser.pendingEscape {
		parser.pendingEscape = false
		if parser.mode != modeValue {
			return
		}
		if c == 'u' {
			parser.collectingHex = true
			parser.pendingHexLen = 0
			return
		}
		if literal, known := escapeTable[c]; known {
			parser.delta.WriteByte(literal)
		} else {
			// Unknown escape: pass the character through unchanged.
			parser.delta.WriteByte(c)
		}
		return
	}

	if c == '\\' && parser.mode == modeValue {
		parser.pendingEscape = true
		return
	}

	if c == '"' {
		parser.toggleString()
		return
	}

	switch parser.mode {
	case modeKey:
		parser.currentKey.WriteByte(c)
	case modeValue:
		parser.delta.WriteByte(c)
	default:
		// Structural characters between strings are discarded.
	}
}

// toggleString handles an unescaped double quote: it either opens or closes
// a key or a value, depending on where the scan currently is.
func (parser *Parser) toggleString() {
	switch parser.mode {
	case modeKey:
		// Key complete; its value is expected next.
		parser.mode = modeOutside
		parser.keySettled = true
	case modeValue:
		// Value complete; the next string opens a new key.
		parser.mode = modeOutside
		parser.keySettled = false
	default:
		if parser.keySettled {
			parser.mode = modeValue
			return
		}
		// A new key begins: settle the previous field's delta first.
		parser.flushDelta()
		parser.currentKey.Reset()
		parser.hasKey = true
		parser.mode = modeKey
	}
}

// resolveUnicodeEscape decodes the four collected hex digits into a code
// point. Invalid hex is passed through as the literal four characters rather
// than failing; the backslash-u prefix is dropped either way, matching the
// passthrough behavior of the other escape rules.
func (parser *Parser) resolveUnicodeEscape() {
	parser.collectingHex = false
	digits := string(parser.pendingHex[:])
	parser.pendingHexLen = 0

	if parser.mode != modeValue {
		return
	}

	codePoint, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		parser.delta.WriteString(digits)
		return
	}

	var encoded [utf8.UTFMax]byte
	n := utf8.EncodeRune(encoded[:], rune(codePoint))
	parser.delta.Write(encoded[:n])
}
