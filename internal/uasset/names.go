package uasset

import "strconv"

// NameMode selects how a symbolic name reference is encoded.
type NameMode int

const (
	// NameInstanceSuffix reads an index and an instance number; instance n > 0
	// renders as "<name>_<n-1>".
	NameInstanceSuffix NameMode = iota
	// NameSkipNumber reads an index and skips the following 4 bytes.
	NameSkipNumber
)

// NameTable is the ordered list of names declared by a header file.
type NameTable []string

// Resolve renders the name at index with its instance suffix.
func (t NameTable) Resolve(index, instance int32) (string, error) {
	if index < 0 || int(index) >= len(t) {
		return "", newError(KindInvalidReference, -1, "name index %d out of range (table has %d names)", index, len(t))
	}
	name := t[index]
	if instance > 0 {
		return name + "_" + strconv.Itoa(int(instance-1)), nil
	}
	return name, nil
}

// readName decodes a symbolic name at the cursor and resolves it against t.
func readName(c *Cursor, t NameTable, mode NameMode) (string, error) {
	start := c.Pos()
	index, err := c.I32()
	if err != nil {
		return "", err
	}
	number, err := c.I32()
	if err != nil {
		return "", err
	}
	if mode == NameSkipNumber {
		number = 0
	}
	name, err := t.Resolve(index, number)
	if err != nil {
		e := err.(*Error)
		e.Offset = start
		return "", e
	}
	return name, nil
}
