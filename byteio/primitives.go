// Package byteio provides the low-level, byte-oriented read/write primitives that
// every higher layer of the deppth package I/O stack is built from: fixed-width
// big-endian integers, IEEE-754 singles, length-prefixed strings, and the 7-bit
// varint encoding used by XNB payload headers.
//
// All functions operate on plain io.Reader/io.Writer so they compose with the
// chunked container stream, an in-memory buffer, or a plain file handle alike.
package byteio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/quaerus/deppth/errs"
)

// ReadU8 reads a single byte.
func ReadU8(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: read u8: %v", errs.ErrMalformedInput, err)
	}

	return buf[0], nil
}

// WriteU8 writes a single byte.
func WriteU8(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// ReadI32BE reads a 4-byte big-endian signed integer.
func ReadI32BE(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: read i32: %v", errs.ErrMalformedInput, err)
	}

	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteI32BE writes a 4-byte big-endian signed integer.
func WriteI32BE(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])

	return err
}

// ReadF32BE reads a 4-byte big-endian IEEE-754 single.
func ReadF32BE(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: read f32: %v", errs.ErrMalformedInput, err)
	}

	bits := binary.BigEndian.Uint32(buf[:])

	return math.Float32frombits(bits), nil
}

// WriteF32BE writes a 4-byte big-endian IEEE-754 single.
func WriteF32BE(w io.Writer, v float32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	_, err := w.Write(buf[:])

	return err
}

// ReadString reads a u8-length-prefixed ASCII string (max 255 bytes).
func ReadString(r io.Reader) (string, error) {
	n, err := ReadU8(r)
	if err != nil {
		return "", err
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: read string body: %v", errs.ErrMalformedInput, err)
	}

	return string(buf), nil
}

// WriteString writes a u8-length-prefixed ASCII string. It fails if s is longer
// than 255 bytes.
func WriteString(w io.Writer, s string) error {
	if len(s) > 255 {
		return fmt.Errorf("%w: string exceeds maximum length for packing: %d", errs.ErrEncodingError, len(s))
	}

	if err := WriteU8(w, byte(len(s))); err != nil {
		return err
	}

	_, err := io.WriteString(w, s)

	return err
}

// ReadBigString reads an i32-big-endian-length-prefixed UTF-8 string.
func ReadBigString(r io.Reader) (string, error) {
	n, err := ReadI32BE(r)
	if err != nil {
		return "", err
	}

	if n < 0 {
		return "", fmt.Errorf("%w: negative big string length: %d", errs.ErrMalformedInput, n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: read big string body: %v", errs.ErrMalformedInput, err)
	}

	return string(buf), nil
}

// WriteBigString writes an i32-big-endian-length-prefixed UTF-8 string.
func WriteBigString(w io.Writer, s string) error {
	if err := WriteI32BE(w, int32(len(s))); err != nil {
		return err
	}

	_, err := io.WriteString(w, s)

	return err
}

// IsEOF non-destructively probes rs for end-of-stream: it attempts a 1-byte read
// and, if data was returned, rewinds the position by one byte.
func IsEOF(rs io.ReadSeeker) (bool, error) {
	var buf [1]byte

	n, err := rs.Read(buf[:])
	if err == io.EOF || n == 0 {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := rs.Seek(-1, io.SeekCurrent); err != nil {
		return false, err
	}

	return false, nil
}
