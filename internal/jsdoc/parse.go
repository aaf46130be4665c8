package jsdoc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header of a zstd stream.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Decode reads a full JSDoc JSON dump from r and parses it.
// zstd-compressed input (e.g. a cached "jsdoc -X | zstd" dump) is detected by
// its magic bytes and decompressed transparently.
func Decode(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading jsdoc JSON: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals a JSDoc JSON array and validates every record of a known
// kind. Records of other kinds are kept but not validated.
func Parse(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshaling jsdoc JSON: %w", err)
	}

	var errs []error
	for i := range records {
		if err := validate(&records[i]); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%q): %w", i, records[i].Longname, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return records, nil
}

// ErrMalformed is returned for records missing a field their kind requires.
var ErrMalformed = errors.New("malformed record")

func validate(r *Record) error {
	if r.Kind == "" {
		return fmt.Errorf("%w: missing kind", ErrMalformed)
	}
	if !r.Kind.Known() {
		return nil
	}
	if r.Name == "" {
		return fmt.Errorf("%w: %s without name", ErrMalformed, r.Kind)
	}
	if r.Longname == "" {
		return fmt.Errorf("%w: %s without longname", ErrMalformed, r.Kind)
	}
	if r.Kind == KindFunction && r.Scope == "" {
		return fmt.Errorf("%w: function without scope", ErrMalformed)
	}
	return nil
}
