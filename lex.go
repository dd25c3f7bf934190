package surfexpr

import (
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes consumed so far.
	col int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// Tokenize splits an expression into tokens. It stops at the first invalid
// lexeme, returning a *LexError.
func Tokenize(src string) ([]Token, error) {
	toks, _, err := tokenize(strings.NewReader(src))
	return toks, err
}

// tokenize scans all tokens from src. The second result is the column just
// past the end of the input.
func tokenize(src io.RuneScanner) ([]Token, int, error) {
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, l.col + 1, nil
			}
			return nil, 0, err
		}
		toks = append(toks, tok)
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. At the end of the input, the
// error is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		col := l.col + 1
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		switch {
		case r == ' ':
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			return l.scanNum(col)
		case 'a' <= r && r <= 'z':
			l.unreadRune()
			return l.scanIdent(col)
		case r < utf8.RuneSelf && strings.IndexByte(Delimiters, byte(r)) >= 0:
			tok, _ := NewDelimiter(byte(r))
			return tok.at(col, string(r)), nil
		case r < utf8.RuneSelf && strings.IndexByte(Operators, byte(r)) >= 0:
			tok, _ := NewOperator(byte(r))
			return tok.at(col, string(r)), nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return Token{}, l.error(col, "", "invalid or misplaced character")
		}
	}
}

// digits scans a run of decimal digits into the buffer.
func (l *lexer) digits() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// peek reads the next rune without consuming it. ok is false at the end of
// the input.
func (l *lexer) peek() (r rune, ok bool, err error) {
	r, err = l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	l.unreadRune()
	return r, true, nil
}

func (l *lexer) scanNum(col int) (Token, error) {
	if err := l.digits(); err != nil {
		return Token{}, err
	}
	r, ok, err := l.peek()
	if err != nil {
		return Token{}, err
	}
	if !ok || r != '.' {
		v, err := strconv.ParseInt(l.buf.String(), 10, 64)
		if err != nil {
			return Token{}, l.error(col, "number", "integer literal out of range")
		}
		return NewInt(v).at(col, l.buf.String()), nil
	}
	l.readRune()
	l.buf.WriteByte('.')
	r, ok, err = l.peek()
	switch {
	case err != nil:
		return Token{}, err
	case !ok:
		return Token{}, l.error(col, "number", "expression ended at decimal point")
	case r < '0' || r > '9':
		l.buf.WriteRune(r)
		return Token{}, l.error(col, "number", "invalid character after decimal point")
	}
	if err := l.digits(); err != nil {
		return Token{}, err
	}
	r, ok, err = l.peek()
	if err != nil {
		return Token{}, err
	}
	if ok && r == '.' {
		l.buf.WriteByte('.')
		return Token{}, l.error(col, "number", "second decimal point in number")
	}
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		return Token{}, l.error(col, "number", "float literal out of range")
	}
	return NewFloat(v).at(col, l.buf.String()), nil
}

func (l *lexer) scanIdent(col int) (Token, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				break
			}
			return Token{}, err
		}
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	name := l.buf.String()
	tok, err := NewIdentifier(name)
	if err != nil {
		lerr := l.error(col, "identifier", "invalid identifier")
		lerr.Suggest = suggest(name)
		return Token{}, lerr
	}
	return tok.at(col, name), nil
}

func (l *lexer) error(col int, kind, reason string) *LexError {
	return &LexError{
		Text:   l.buf.String(),
		Kind:   kind,
		Reason: reason,
		Col:    col,
	}
}

// suggest finds the keyword closest to an invalid identifier, or the empty
// string if nothing is close.
func suggest(word string) string {
	if ranks := fuzzy.RankFindFold(word, keywords); len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}
	best, dist := "", 3
	for _, k := range keywords {
		if d := fuzzy.LevenshteinDistance(word, k); d < dist {
			best, dist = k, d
		}
	}
	return best
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the lexeme the lexer was scanning when it failed, including
	// the offending rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "identifier", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Reason describes what was wrong with the lexeme.
	Reason string
	// Col is the column of the start of the lexeme.
	Col int
	// Suggest is the closest keyword to an invalid identifier, if any.
	Suggest string
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	s := "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	if err.Kind != "" {
		s = "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
	}
	if err.Reason != "" {
		s += " (" + err.Reason + ")"
	}
	if err.Suggest != "" {
		s += "; did you mean " + err.Suggest + "?"
	}
	return s
}

func (err *LexError) Pos() int {
	return err.Col
}
