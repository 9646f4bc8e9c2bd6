package uasset

import "encoding/hex"

// Tag is the magic number every package header starts with.
const Tag uint32 = 0x9E2A83C1

// MaxSafeSize bounds export sizes and offsets (2^53-1).
const MaxSafeSize = 1<<53 - 1

// legacyVersionUE4 is the legacy version marker of headers without a UE3 version field.
const legacyVersionUE4 = -4

// Header is a parsed package header (*.uasset).
type Header struct {
	Tag             uint32 `json:"tag"`
	LegacyVersion   int32  `json:"legacy_version"`
	UE3Version      int32  `json:"ue3_version,omitempty"`
	FileVersion     int32  `json:"file_version"`
	LicenseeVersion int32  `json:"licensee_version"`
	HeadersSize     int32  `json:"headers_size"`
	PackageGroup    string `json:"package_group"`
	PackageFlags    uint32 `json:"package_flags"`

	NamesCount    int32 `json:"names_count"`
	NamesOffset   int32 `json:"names_offset"`
	ExportsCount  int32 `json:"exports_count"`
	ExportsOffset int32 `json:"exports_offset"`

	Names   NameTable `json:"names"`
	Exports []Export  `json:"exports"`
}

// Export describes one serialized object of the package.
type Export struct {
	ClassIndex       int32  `json:"class_index"`
	SuperIndex       int32  `json:"super_index"`
	TemplateIndex    int32  `json:"template_index"`
	PackageIndex     int32  `json:"package_index"`
	ObjectName       string `json:"object_name"`
	ObjectFlags      uint32 `json:"object_flags"`
	SerialSize       int64  `json:"serial_size"`
	SerialOffset     int64  `json:"serial_offset"`
	ForcedExport     bool   `json:"forced_export"`
	NotForClient     bool   `json:"not_for_client"`
	NotForServer     bool   `json:"not_for_server"`
	GUID             GUID   `json:"guid"`
	PackageFlags     uint32 `json:"package_flags"`
	NotForEditorGame bool   `json:"not_for_editor_game"`
	IsAsset          bool   `json:"is_asset"`
}

// GUID is an opaque 16-byte identifier.
type GUID [16]byte

// MarshalText renders the GUID as lowercase hex.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(g[:])), nil
}

type headerReader struct {
	Cursor
	opts Options
	h    *Header
}

// ParseHeader validates and parses a package header.
func ParseHeader(buf []byte, opts Options) (*Header, error) {
	r := &headerReader{Cursor: NewCursor(buf), opts: opts, h: &Header{}}
	if err := r.summary(); err != nil {
		return nil, err
	}
	if err := r.names(); err != nil {
		return nil, err
	}
	if err := r.exports(); err != nil {
		return nil, err
	}
	return r.h, nil
}

func (r *headerReader) summary() error {
	h := r.h
	var err error

	if h.Tag, err = r.U32(); err != nil {
		return err
	}
	if h.Tag != Tag {
		return newError(KindInvalidFormat, 0, "invalid tag 0x%08X", h.Tag)
	}

	word, err := r.U32()
	if err != nil {
		return err
	}
	h.LegacyVersion = int32(word)
	if h.LegacyVersion != legacyVersionUE4 {
		if h.UE3Version, err = r.I32(); err != nil {
			return err
		}
	}

	at := r.Pos()
	version, err := r.I32()
	if err != nil {
		return err
	}
	licensee, err := r.I32()
	if err != nil {
		return err
	}
	h.LicenseeVersion = licensee & 0xFFFF
	h.FileVersion = version & 0xFFFF
	if h.FileVersion != 0 {
		return newError(KindUnsupportedVersion, at, "file version %d", h.FileVersion)
	}
	if h.LicenseeVersion != 0 {
		return newError(KindUnsupportedVersion, at+4, "licensee version %d", h.LicenseeVersion)
	}

	if h.LegacyVersion <= -2 {
		at := r.Pos()
		custom, err := r.I32()
		if err != nil {
			return err
		}
		if custom != 0 {
			return newError(KindUnsupportedFeature, at, "%d custom versions", custom)
		}
	}

	if h.HeadersSize, err = r.I32(); err != nil {
		return err
	}
	if h.PackageGroup, err = r.Str(); err != nil {
		return err
	}
	if h.PackageFlags, err = r.U32(); err != nil {
		return err
	}
	if h.NamesCount, err = r.I32(); err != nil {
		return err
	}
	if h.NamesOffset, err = r.I32(); err != nil {
		return err
	}
	// Gatherable text data count and offset.
	if err := r.Skip(8); err != nil {
		return err
	}
	at = r.Pos()
	if h.ExportsCount, err = r.I32(); err != nil {
		return err
	}
	if h.ExportsOffset, err = r.I32(); err != nil {
		return err
	}

	if h.NamesCount < 0 {
		return newError(KindInvalidFormat, at-16, "negative name count %d", h.NamesCount)
	}
	if h.ExportsCount < 0 || (r.opts.StrictExports && h.ExportsCount != 1) {
		return newError(KindUnsupportedFeature, at, "%d exports", h.ExportsCount)
	}
	return nil
}

func (r *headerReader) names() error {
	if err := r.Seek(int(r.h.NamesOffset)); err != nil {
		return err
	}
	names := make(NameTable, 0, min(int(r.h.NamesCount), r.Remaining()/4))
	for i := int32(0); i < r.h.NamesCount; i++ {
		name, err := r.Str()
		if err != nil {
			return err
		}
		// Per-name hash, not interpreted.
		if err := r.Skip(4); err != nil {
			return err
		}
		names = append(names, name)
	}
	r.h.Names = names
	return nil
}

func (r *headerReader) exports() error {
	if err := r.Seek(int(r.h.ExportsOffset)); err != nil {
		return err
	}
	exports := make([]Export, 0, min(int(r.h.ExportsCount), 16))
	for i := int32(0); i < r.h.ExportsCount; i++ {
		e, err := r.export()
		if err != nil {
			return err
		}
		exports = append(exports, e)
	}
	r.h.Exports = exports
	return nil
}

func (r *headerReader) export() (Export, error) {
	var e Export
	var err error

	for _, dst := range []*int32{&e.ClassIndex, &e.SuperIndex, &e.TemplateIndex, &e.PackageIndex} {
		if *dst, err = r.I32(); err != nil {
			return e, err
		}
	}
	if e.ObjectName, err = readName(&r.Cursor, r.h.Names, r.opts.Names); err != nil {
		return e, err
	}
	if e.ObjectFlags, err = r.U32(); err != nil {
		return e, err
	}

	at := r.Pos()
	if e.SerialSize, err = r.I64(); err != nil {
		return e, err
	}
	if e.SerialOffset, err = r.I64(); err != nil {
		return e, err
	}
	if e.SerialSize < 0 || e.SerialSize > MaxSafeSize {
		return e, newError(KindUnsupportedSize, at, "export size %d", e.SerialSize)
	}
	if e.SerialOffset < 0 || e.SerialOffset > MaxSafeSize {
		return e, newError(KindUnsupportedSize, at+8, "export offset %d", e.SerialOffset)
	}

	for _, dst := range []*bool{&e.ForcedExport, &e.NotForClient, &e.NotForServer} {
		if *dst, err = r.Bool(); err != nil {
			return e, err
		}
	}
	guid, err := r.take(16)
	if err != nil {
		return e, err
	}
	copy(e.GUID[:], guid)
	if e.PackageFlags, err = r.U32(); err != nil {
		return e, err
	}
	if e.NotForEditorGame, err = r.Bool(); err != nil {
		return e, err
	}
	if e.IsAsset, err = r.Bool(); err != nil {
		return e, err
	}
	return e, nil
}
