package uasset

import "github.com/rcliao/ff7r-text/internal/model"

// RecordStreamOffset is where the line count of a record file starts. The
// bytes before it are not interpreted.
const RecordStreamOffset = 0x0D

// Records is a parsed record file (*.uexp).
type Records struct {
	Count uint32       `json:"count"`
	Lines []model.Line `json:"lines"`
}

type recordReader struct {
	Cursor
	names NameTable
	mode  NameMode
}

// ParseRecords parses the line stream of a record file, resolving attribute
// keys against names. Lines are returned in file order, unfiltered.
func ParseRecords(buf []byte, names NameTable, opts Options) (*Records, error) {
	r := &recordReader{Cursor: NewCursor(buf), names: names, mode: opts.Names}
	if err := r.Seek(RecordStreamOffset); err != nil {
		return nil, err
	}
	count, err := r.U32()
	if err != nil {
		return nil, err
	}
	// Each line needs at least 12 bytes, so cap the preallocation by what is left.
	lines := make([]model.Line, 0, min(int(count), r.Remaining()/12))
	for i := uint32(0); i < count; i++ {
		line, err := r.line()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return &Records{Count: count, Lines: lines}, nil
}

func (r *recordReader) line() (model.Line, error) {
	var l model.Line
	var err error

	if l.ID, err = r.Str(); err != nil {
		return l, err
	}
	if l.Text, err = r.Str(); err != nil {
		return l, err
	}
	pairs, err := r.U32()
	if err != nil {
		return l, err
	}
	// Most lines carry a single ACTOR pair; later duplicates of a key win.
	l.Meta = make(map[string]string, min(int(pairs), 4))
	for j := uint32(0); j < pairs; j++ {
		key, err := readName(&r.Cursor, r.names, r.mode)
		if err != nil {
			return l, err
		}
		value, err := r.Str()
		if err != nil {
			return l, err
		}
		l.Meta[key] = value
	}
	return l, nil
}
