// Package fru redacts identifying strings from IPMI FRU EEPROM images so
// they can be checked in and embedded as test fixtures.
package fru

import (
	"context"
	"errors"
	"fmt"

	"github.com/awantoch/eepromgen/blob"
	"github.com/awantoch/eepromgen/constants"
)

// ImageSize is the EEPROM size handled; longer inputs are truncated.
const ImageSize = 512

const (
	headerSize     = 8
	headerVersion  = 0x01
	areaCount      = 5
	maxFields      = 10
	endOfFields    = 0xc1
	typeASCII8     = 0xc0
	lengthMask     = 0x3f
	redactFillChar = 'X'
)

// Area indexes into the common header's offset table.
const (
	AreaInternal = iota
	AreaChassis
	AreaBoard
	AreaProduct
	AreaMultiRecord
)

var (
	ErrShortImage    = errors.New("fru: image too short")
	ErrBadHeader     = errors.New("fru: bad common header")
	ErrBadChecksum   = errors.New("fru: bad checksum")
	ErrFieldBounds   = errors.New("fru: field out of bounds")
	ErrTooManyFields = errors.New("fru: too many fields")
)

// fieldStart is where the type/length fields begin inside each area.
var fieldStart = [areaCount]int{0, 3, 6, 3, 0}

// redactedFields marks, per area, which field indexes get overwritten.
var redactedFields = [areaCount][maxFields]bool{
	AreaBoard:   {true, false, true, true, false, true, true},
	AreaProduct: {true, false, true, false, true, true, false, true},
}

// Field is one type/length encoded string after redaction.
type Field struct {
	Area     int
	Index    int
	Value    []byte
	Redacted bool
}

// Result holds the redacted image and every field visited.
type Result struct {
	Image  []byte
	Fields []Field
}

func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Redact returns a redacted copy of the first ImageSize bytes of image.
// The input slice is not modified.
func Redact(image []byte) (*Result, error) {
	if len(image) < ImageSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrShortImage, len(image), ImageSize)
	}
	buf := make([]byte, ImageSize)
	copy(buf, image)

	if buf[0] != headerVersion || buf[6] != 0x00 {
		return nil, fmt.Errorf("%w: version 0x%02x pad 0x%02x", ErrBadHeader, buf[0], buf[6])
	}
	if checksum(buf[:headerSize]) != 0 {
		return nil, fmt.Errorf("%w: common header", ErrBadChecksum)
	}

	res := &Result{Image: buf}
	for i := AreaChassis; i < areaCount; i++ {
		offset := int(buf[1+i]) * 8
		if offset == 0 {
			continue
		}
		fields, err := redactArea(buf, i, offset)
		if err != nil {
			return nil, err
		}
		res.Fields = append(res.Fields, fields...)
	}
	return res, nil
}

func redactArea(buf []byte, i, offset int) ([]Field, error) {
	if offset+2 > len(buf) {
		return nil, fmt.Errorf("%w: area %d at offset %d", ErrFieldBounds, i, offset)
	}
	length := int(buf[offset+1]&lengthMask) * 8
	if length == 0 || offset+length > len(buf) {
		return nil, fmt.Errorf("%w: area %d length %d at offset %d", ErrFieldBounds, i, length, offset)
	}
	area := buf[offset : offset+length]
	// The last byte is the area checksum and never holds field data.
	limit := length - 1

	var fields []Field
	p := fieldStart[i]
	for j := 0; ; j++ {
		if p >= limit {
			return nil, fmt.Errorf("%w: area %d missing end marker", ErrFieldBounds, i)
		}
		if area[p] == endOfFields {
			break
		}
		if j >= maxFields {
			return nil, fmt.Errorf("%w: area %d", ErrTooManyFields, i)
		}
		n := int(area[p] & lengthMask)
		area[p] = byte(n) | typeASCII8
		p++
		if p+n > limit {
			return nil, fmt.Errorf("%w: area %d field %d", ErrFieldBounds, i, j)
		}
		value := area[p : p+n]
		redact := redactedFields[i][j]
		if redact {
			for k := range value {
				value[k] = redactFillChar
			}
		}
		fields = append(fields, Field{Area: i, Index: j, Value: append([]byte(nil), value...), Redacted: redact})
		p += n
	}

	area[limit] = -checksum(area[:limit])
	return fields, nil
}

// RedactFile reads ref from store, redacts it and writes the result next to
// it with a ".redacted" suffix. It returns the result and where it was
// written.
func RedactFile(ctx context.Context, store blob.Store, ref string) (*Result, string, error) {
	image, err := store.Get(ctx, ref)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", ref, err)
	}
	res, err := Redact(image)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", ref, err)
	}
	out, err := store.Put(ctx, ref+constants.RedactedSuffix, res.Image)
	if err != nil {
		return nil, "", fmt.Errorf("write %s: %w", ref+constants.RedactedSuffix, err)
	}
	return res, out, nil
}
