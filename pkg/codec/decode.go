package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports malformed input together with the byte position
// at which parsing failed.
type SyntaxError struct {
	Pos int
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// Decoder is a recursive-descent reader over document text. It keeps an
// explicit cursor and never backtracks. Create one per document with
// [NewDecoder]; a Decoder cannot be reused.
type Decoder struct {
	src string
	pos int
}

// NewDecoder returns a decoder positioned at the start of src.
func NewDecoder(src string) *Decoder { return &Decoder{src: src} }

func (d *Decoder) errf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (d *Decoder) ws() {
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *Decoder) expect(c byte) error {
	d.ws()
	if d.pos >= len(d.src) {
		return d.errf(d.pos, "expected %q, found end of input", c)
	}
	if d.src[d.pos] != c {
		return d.errf(d.pos, "expected %q, found %q", c, d.src[d.pos])
	}
	d.pos++
	return nil
}

// literal consumes word if it is next in the input and reports whether
// it did. Literals are the keywords true, false, and null.
func (d *Decoder) literal(word string) bool {
	d.ws()
	if strings.HasPrefix(d.src[d.pos:], word) {
		d.pos += len(word)
		return true
	}
	return false
}

// Object reads one object. For every key, field is called after the key
// and its colon have been consumed; a handled field must read its value
// with one of the decoder's value methods and return true. Returning
// false skips the value structurally, which is how unknown keys from
// newer documents are tolerated.
func (d *Decoder) Object(field func(key string) (bool, error)) error {
	if err := d.expect('{'); err != nil {
		return err
	}
	d.ws()
	if d.pos < len(d.src) && d.src[d.pos] == '}' {
		d.pos++
		return nil
	}
	for {
		key, err := d.Str()
		if err != nil {
			return err
		}
		if err := d.expect(':'); err != nil {
			return err
		}
		handled, err := field(key)
		if err != nil {
			return err
		}
		if !handled {
			if err := d.skipValue(); err != nil {
				return err
			}
		}
		d.ws()
		if d.pos >= len(d.src) {
			return d.errf(d.pos, "expected ',' or '}', found end of input")
		}
		switch d.src[d.pos] {
		case ',':
			d.pos++
		case '}':
			d.pos++
			return nil
		default:
			return d.errf(d.pos, "expected ',' or '}', found %q", d.src[d.pos])
		}
	}
}

// List reads one array, calling elem before each element. elem must
// consume exactly one value.
func (d *Decoder) List(elem func() error) error {
	if err := d.expect('['); err != nil {
		return err
	}
	d.ws()
	if d.pos < len(d.src) && d.src[d.pos] == ']' {
		d.pos++
		return nil
	}
	for {
		if err := elem(); err != nil {
			return err
		}
		d.ws()
		if d.pos >= len(d.src) {
			return d.errf(d.pos, "expected ',' or ']', found end of input")
		}
		switch d.src[d.pos] {
		case ',':
			d.pos++
		case ']':
			d.pos++
			return nil
		default:
			return d.errf(d.pos, "expected ',' or ']', found %q", d.src[d.pos])
		}
	}
}

// Str reads one string value. A null literal reads as the empty string,
// mirroring the encoder's omission of empty strings.
func (d *Decoder) Str() (string, error) {
	if d.literal("null") {
		return "", nil
	}
	d.ws()
	start := d.pos
	if d.pos >= len(d.src) || d.src[d.pos] != '"' {
		return "", d.errf(d.pos, "expected string")
	}
	d.pos++
	var sb strings.Builder
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		switch c {
		case '"':
			d.pos++
			return sb.String(), nil
		case '\\':
			d.pos++
			if d.pos >= len(d.src) {
				return "", d.errf(start, "unterminated string")
			}
			switch esc := d.src[d.pos]; esc {
			case '"', '\\', '/':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				return "", d.errf(d.pos, "invalid escape character %q", esc)
			}
			d.pos++
		default:
			sb.WriteByte(c)
			d.pos++
		}
	}
	return "", d.errf(start, "unterminated string")
}

// number consumes numeric text and parses it at the given bit size.
// Conversion from valid numeric text is total; the target primitive is
// chosen by the caller, not by the shape of the text.
func (d *Decoder) number(bits int) (float64, error) {
	if d.literal("null") {
		return 0, nil
	}
	d.ws()
	start := d.pos
	for d.pos < len(d.src) {
		switch c := d.src[d.pos]; {
		case c >= '0' && c <= '9', c == '-', c == '+', c == '.', c == 'e', c == 'E':
			d.pos++
		default:
			goto done
		}
	}
done:
	if start == d.pos {
		return 0, d.errf(start, "expected number")
	}
	f, err := strconv.ParseFloat(d.src[start:d.pos], bits)
	if err != nil {
		// Out-of-range text still parses; ParseFloat returns the
		// saturated value alongside ErrRange.
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, d.errf(start, "invalid number %q", d.src[start:d.pos])
	}
	return f, nil
}

// Int reads one numeric value as an integer, truncating any fraction.
func (d *Decoder) Int() (int, error) {
	f, err := d.number(64)
	return int(f), err
}

// Float64 reads one numeric value as a 64-bit float.
func (d *Decoder) Float64() (float64, error) {
	return d.number(64)
}

// Float32 reads one numeric value as a 32-bit float.
func (d *Decoder) Float32() (float32, error) {
	f, err := d.number(32)
	return float32(f), err
}

// Bool reads one boolean value. A null literal reads as false.
func (d *Decoder) Bool() (bool, error) {
	switch {
	case d.literal("true"):
		return true, nil
	case d.literal("false"), d.literal("null"):
		return false, nil
	}
	return false, d.errf(d.pos, "expected boolean")
}

// skipValue consumes one value of any shape without interpreting it.
// Containers are skipped by depth counting; string contents are scanned
// with escape awareness so a brace or escaped quote inside a string
// cannot unbalance the count.
func (d *Decoder) skipValue() error {
	d.ws()
	if d.pos >= len(d.src) {
		return d.errf(d.pos, "expected value, found end of input")
	}
	switch c := d.src[d.pos]; c {
	case '"':
		return d.skipString()
	case '{', '[':
		depth := 0
		for d.pos < len(d.src) {
			switch d.src[d.pos] {
			case '{', '[':
				depth++
				d.pos++
			case '}', ']':
				depth--
				d.pos++
				if depth == 0 {
					return nil
				}
			case '"':
				if err := d.skipString(); err != nil {
					return err
				}
			default:
				d.pos++
			}
		}
		return d.errf(d.pos, "unterminated value")
	default:
		// Literal or number: consume up to the next delimiter.
		start := d.pos
	scan:
		for d.pos < len(d.src) {
			switch d.src[d.pos] {
			case ',', '}', ']', ' ', '\t', '\n', '\r':
				break scan
			}
			d.pos++
		}
		if d.pos == start {
			return d.errf(start, "expected value, found %q", d.src[start])
		}
		return nil
	}
}

// skipString consumes a string without building its value, honoring
// backslash escapes so an escaped quote does not end the scan early.
func (d *Decoder) skipString() error {
	start := d.pos
	d.pos++ // opening quote
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case '\\':
			d.pos += 2
		case '"':
			d.pos++
			return nil
		default:
			d.pos++
		}
	}
	return d.errf(start, "unterminated string")
}
