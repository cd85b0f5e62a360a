// Package carray renders byte streams as C uint8_t array declarations.
package carray

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// Directive is the include line emitted before the declaration.
	Directive = "#include <stdint.h>"
	// Prefix is prepended to every symbol name.
	Prefix = "g_"
	// Sentinel is the byte appended after the real content.
	Sentinel byte = 0x00

	declarationType = "const uint8_t "
	terminator      = "};\n"
	hexDigits       = "0123456789ABCDEF"
)

// ErrClosed is returned when writing to an encoder that has already been closed.
var ErrClosed = errors.New("carray: encoder closed")

// Encoder streams bytes into a C array fragment:
//
//	#include <stdint.h>
//
//	const uint8_t g_<symbol>[] = {0xHH, ..., 0x00};
//
// Every byte written is rendered as "0xHH, ". Close appends the sentinel and
// the closing brace.
type Encoder struct {
	w       *bufio.Writer
	symbol  string
	length  uint64
	started bool
	closed  bool
}

// NewEncoder creates an Encoder declaring Prefix+symbol on w.
func NewEncoder(w io.Writer, symbol string) *Encoder {
	return &Encoder{
		w:      bufio.NewWriter(w),
		symbol: symbol,
	}
}

// WriteHeader emits the directive line and the declaration opener. It is
// called implicitly by the first Write or by Close.
func (e *Encoder) WriteHeader() error {
	if e.closed {
		return ErrClosed
	}

	if e.started {
		return nil
	}

	e.started = true

	if _, err := fmt.Fprintf(e.w, "%s\n\n%s%s%s[] = {", Directive, declarationType, Prefix, e.symbol); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}

// Write implements io.Writer.
func (e *Encoder) Write(p []byte) (int, error) {
	if err := e.WriteHeader(); err != nil {
		return 0, err
	}

	literal := [6]byte{'0', 'x', 0, 0, ',', ' '}

	for i, b := range p {
		literal[2] = hexDigits[b>>4]
		literal[3] = hexDigits[b&0x0F]

		if _, err := e.w.Write(literal[:]); err != nil {
			return i, fmt.Errorf("failed to write byte %d: %w", e.length, err)
		}

		e.length++
	}

	return len(p), nil
}

// Close terminates the array and flushes buffered output. It does not close
// the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}

	if err := e.WriteHeader(); err != nil {
		return err
	}

	e.closed = true

	if _, err := fmt.Fprintf(e.w, "0x%02X%s", Sentinel, terminator); err != nil {
		return fmt.Errorf("failed to write terminator: %w", err)
	}

	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

// Len returns the number of real bytes encoded so far, the sentinel excluded.
func (e *Encoder) Len() uint64 {
	return e.length
}

// Array is a parsed fragment.
type Array struct {
	Symbol string // without Prefix
	Data   []byte // includes the trailing sentinel
}

// Decode parses a fragment produced by Encoder back into its symbol and bytes.
func Decode(fragment []byte) (Array, error) {
	decl := bytes.Index(fragment, []byte(declarationType+Prefix))
	if decl < 0 {
		return Array{}, errors.New("carray: declaration not found")
	}

	rest := fragment[decl+len(declarationType)+len(Prefix):]

	nameEnd := bytes.Index(rest, []byte("[] = {"))
	if nameEnd < 0 {
		return Array{}, errors.New("carray: malformed declaration")
	}

	body := rest[nameEnd+len("[] = {"):]

	bodyEnd := bytes.Index(body, []byte("};"))
	if bodyEnd < 0 {
		return Array{}, errors.New("carray: unterminated array")
	}

	arr := Array{Symbol: string(rest[:nameEnd])}

	for i, field := range strings.Split(string(body[:bodyEnd]), ",") {
		literal := strings.TrimSpace(field)
		if literal == "" {
			continue
		}

		if !strings.HasPrefix(literal, "0x") {
			return Array{}, fmt.Errorf("carray: element %d %q is not a hex literal", i, literal)
		}

		v, err := strconv.ParseUint(literal[2:], 16, 8)
		if err != nil {
			return Array{}, fmt.Errorf("carray: element %d: %w", i, err)
		}

		arr.Data = append(arr.Data, byte(v))
	}

	return arr, nil
}
