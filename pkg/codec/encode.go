package codec

import (
	"strconv"
	"strings"
)

// Encoder writes the document grammar onto an in-memory buffer.
// Fields are written in call order; the zero value is ready to use.
//
// Encoder is not safe for concurrent use.
type Encoder struct {
	sb    strings.Builder
	stack []int // member count per open container, for comma placement
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// String returns everything written so far.
func (e *Encoder) String() string { return e.sb.String() }

// Root writes the top-level object. fn writes the object's fields.
func (e *Encoder) Root(fn func()) {
	e.sb.WriteByte('{')
	e.push()
	fn()
	e.pop()
	e.sb.WriteByte('}')
}

// Str writes a string field. Empty strings are omitted entirely -
// this is the compaction rule, not an oversight. Readers must treat
// a missing string field as empty.
func (e *Encoder) Str(name, v string) {
	if v == "" {
		return
	}
	e.key(name)
	e.writeString(v)
}

// Int writes an integer field.
func (e *Encoder) Int(name string, v int) {
	e.key(name)
	e.sb.WriteString(strconv.Itoa(v))
}

// Float32 writes a 32-bit float field using the shortest text that
// round-trips back to the same value.
func (e *Encoder) Float32(name string, v float32) {
	e.key(name)
	e.sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
}

// Float64 writes a 64-bit float field using the shortest text that
// round-trips back to the same value.
func (e *Encoder) Float64(name string, v float64) {
	e.key(name)
	e.sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

// Bool writes a boolean field.
func (e *Encoder) Bool(name string, v bool) {
	e.key(name)
	if v {
		e.sb.WriteString("true")
	} else {
		e.sb.WriteString("false")
	}
}

// Obj writes a nested object field. fn writes the nested fields.
func (e *Encoder) Obj(name string, fn func()) {
	e.key(name)
	e.sb.WriteByte('{')
	e.push()
	fn()
	e.pop()
	e.sb.WriteByte('}')
}

// List writes an array field with n elements. elem must write exactly
// one value per index via [Encoder.Item] or [Encoder.ItemStr].
func (e *Encoder) List(name string, n int, elem func(i int)) {
	e.key(name)
	e.sb.WriteByte('[')
	e.push()
	for i := 0; i < n; i++ {
		elem(i)
	}
	e.pop()
	e.sb.WriteByte(']')
}

// Item writes one object element inside a List.
func (e *Encoder) Item(fn func()) {
	e.comma()
	e.sb.WriteByte('{')
	e.push()
	fn()
	e.pop()
	e.sb.WriteByte('}')
}

// ItemStr writes one string element inside a List.
func (e *Encoder) ItemStr(v string) {
	e.comma()
	e.writeString(v)
}

func (e *Encoder) key(name string) {
	e.comma()
	e.writeString(name)
	e.sb.WriteByte(':')
}

func (e *Encoder) push() { e.stack = append(e.stack, 0) }
func (e *Encoder) pop()  { e.stack = e.stack[:len(e.stack)-1] }

func (e *Encoder) comma() {
	if n := len(e.stack); n > 0 {
		if e.stack[n-1] > 0 {
			e.sb.WriteByte(',')
		}
		e.stack[n-1]++
	}
}

// writeString emits a quoted string, escaping the quote, the backslash,
// and the three control characters the format allows in text.
func (e *Encoder) writeString(s string) {
	e.sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			e.sb.WriteString(`\"`)
		case '\\':
			e.sb.WriteString(`\\`)
		case '\n':
			e.sb.WriteString(`\n`)
		case '\r':
			e.sb.WriteString(`\r`)
		case '\t':
			e.sb.WriteString(`\t`)
		default:
			e.sb.WriteByte(c)
		}
	}
	e.sb.WriteByte('"')
}
