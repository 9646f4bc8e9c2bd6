// Package uassettest builds package files for tests.
package uassettest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"
)

// Tag is the package header magic.
const Tag uint32 = 0x9E2A83C1

// RecordStreamOffset is where a record file's line count starts.
const RecordStreamOffset = 13

// Encoder writes little-endian fields.
type Encoder struct{ bytes.Buffer }

func (e *Encoder) U8(v uint8)   { e.WriteByte(v) }
func (e *Encoder) U32(v uint32) { binary.Write(&e.Buffer, binary.LittleEndian, v) }
func (e *Encoder) I32(v int32)  { binary.Write(&e.Buffer, binary.LittleEndian, v) }
func (e *Encoder) I64(v int64)  { binary.Write(&e.Buffer, binary.LittleEndian, v) }

func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
	} else {
		e.U8(0)
	}
}

// Str writes a narrow string with its NUL terminator; "" is written as length 0.
func (e *Encoder) Str(s string) {
	if s == "" {
		e.I32(0)
		return
	}
	e.I32(int32(len(s) + 1))
	e.WriteString(s)
	e.U8(0)
}

// WStr writes a UTF-16LE string with its NUL terminator.
func (e *Encoder) WStr(s string) {
	units := append(utf16.Encode([]rune(s)), 0)
	e.I32(-int32(len(units)))
	for _, u := range units {
		binary.Write(&e.Buffer, binary.LittleEndian, u)
	}
}

// Name writes a symbolic name reference.
func (e *Encoder) Name(index, instance int32) {
	e.I32(index)
	e.I32(instance)
}

// Patch32 overwrites 4 bytes at offset at.
func (e *Encoder) Patch32(at int, v int32) {
	binary.LittleEndian.PutUint32(e.Bytes()[at:], uint32(v))
}

// Export describes one export descriptor.
type Export struct {
	NameIndex    int32
	NameInstance int32
	Size, Offset int64
	GUID         [16]byte
	IsAsset      bool
}

// Header describes a header file. Names and exports are laid out after the
// summary and their offsets patched in.
type Header struct {
	Tag      uint32
	Legacy   int32
	Version  int32
	Licensee int32
	Custom   int32
	Names    []string
	Exports  []Export
}

// NewHeader returns a valid single-export header declaring names.
func NewHeader(names ...string) Header {
	return Header{
		Tag:     Tag,
		Legacy:  -7,
		Names:   names,
		Exports: []Export{{Size: 120, Offset: 512, IsAsset: true}},
	}
}

// Bytes encodes the header.
func (h Header) Bytes() []byte {
	var e Encoder
	e.U32(h.Tag)
	e.I32(h.Legacy)
	if h.Legacy != -4 {
		e.I32(864)
	}
	e.I32(h.Version)
	e.I32(h.Licensee)
	if h.Legacy <= -2 {
		e.I32(h.Custom)
	}
	e.I32(0) // headers size
	e.Str("None")
	e.U32(0x80000000)
	e.I32(int32(len(h.Names)))
	namesAt := e.Len()
	e.I32(0)
	e.I32(0) // gatherable text
	e.I32(0)
	e.I32(int32(len(h.Exports)))
	exportsAt := e.Len()
	e.I32(0)

	e.Patch32(namesAt, int32(e.Len()))
	for _, n := range h.Names {
		e.Str(n)
		e.U32(0xDEADBEEF)
	}

	e.Patch32(exportsAt, int32(e.Len()))
	for _, x := range h.Exports {
		e.I32(-1)
		e.I32(0)
		e.I32(0)
		e.I32(0)
		e.Name(x.NameIndex, x.NameInstance)
		e.U32(0x00000008)
		e.I64(x.Size)
		e.I64(x.Offset)
		e.Bool(false)
		e.Bool(false)
		e.Bool(false)
		e.Write(x.GUID[:])
		e.U32(0)
		e.Bool(false)
		e.Bool(x.IsAsset)
	}
	return e.Bytes()
}

// Attr is one key/value pair of a line; the key is a name reference.
type Attr struct {
	Index, Instance int32
	Value           string
}

// Line describes one record.
type Line struct {
	ID, Text string
	Attrs    []Attr
}

// Actor returns a line spoken by the name at index 0.
func Actor(id, text, speaker string) Line {
	return Line{ID: id, Text: text, Attrs: []Attr{{0, 0, speaker}}}
}

// Records encodes a record file.
func Records(lines ...Line) []byte {
	var e Encoder
	e.Write(make([]byte, RecordStreamOffset))
	e.U32(uint32(len(lines)))
	for _, l := range lines {
		e.Str(l.ID)
		e.Str(l.Text)
		e.U32(uint32(len(l.Attrs)))
		for _, a := range l.Attrs {
			e.Name(a.Index, a.Instance)
			e.Str(a.Value)
		}
	}
	return e.Bytes()
}

// WritePair writes stem.uasset and stem.uexp into dir and returns the header path.
func WritePair(t testing.TB, dir, stem string, header, records []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, stem+".uasset")
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, stem+".uexp"), records, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
