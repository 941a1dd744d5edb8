package lzw12

// Code space layout.
const (
	CodeBits    = 12
	MaxCode     = 1<<CodeBits - 1 // 4095
	EndOfStream = 256             // terminator, never assigned to a string
	FirstCode   = 257             // first code assigned to a learned string

	// dictSize is a prime larger than the code space, so the encode-side
	// table stays under 77% full and every probe sequence visits all slots.
	dictSize = 5021

	unused = -1
)

// dictEntry is one encode-side slot: code is the string "parent + char".
type dictEntry struct {
	code   int32 // unused marks a free slot
	parent int32
	char   byte
}

// encodeDict maps (parent, char) to an assigned code using open addressing.
type encodeDict struct {
	slots [dictSize]dictEntry
	used  int
}

func (d *encodeDict) reset() {
	for i := range d.slots {
		d.slots[i] = dictEntry{code: unused}
	}
	d.used = 0
}

// find returns the slot holding (parent, char) and true, or the free slot
// where it may be reserved and false.
//
// The hash puts char above the low 8 bits of the code space and XORs in the
// parent. Collisions step backwards by dictSize-index (1 for index 0).
func (d *encodeDict) find(parent int, char byte) (int, bool) {
	index := int(char)<<(CodeBits-8) ^ parent
	step := 1
	if index != 0 {
		step = dictSize - index
	}
	for {
		slot := &d.slots[index]
		if slot.code == unused {
			return index, false
		}
		if int(slot.parent) == parent && slot.char == char {
			return index, true
		}
		index -= step
		if index < 0 {
			index += dictSize
		}
	}
}

func (d *encodeDict) code(index int) int {
	return int(d.slots[index].code)
}

// reserve binds code to (parent, char) in a slot previously returned by a
// missed find.
func (d *encodeDict) reserve(index, code, parent int, char byte) {
	d.slots[index] = dictEntry{code: int32(code), parent: int32(parent), char: char}
	d.used++
}

// decodeEntry is the decode-side cell for one code.
type decodeEntry struct {
	parent int32
	char   byte
}

// decodeTable is indexed directly by code. Cells below EndOfStream are
// never read: literals stand for themselves.
type decodeTable struct {
	cells [MaxCode + 1]decodeEntry
}

func (t *decodeTable) reset() {
	for i := EndOfStream; i < len(t.cells); i++ {
		t.cells[i] = decodeEntry{parent: unused}
	}
}

func (t *decodeTable) set(code, parent int, char byte) {
	t.cells[code] = decodeEntry{parent: int32(parent), char: char}
}

// expand appends the string for code to stack in reverse order, last byte
// first and the literal root last. It reports false if the parent chain is
// longer than any chain the encoder can build, which only happens on
// corrupt input.
func (t *decodeTable) expand(stack []byte, code int) ([]byte, bool) {
	for steps := 0; code > 0xff; steps++ {
		if steps > MaxCode || code > MaxCode {
			return stack, false
		}
		cell := t.cells[code]
		stack = append(stack, cell.char)
		code = int(cell.parent)
	}
	if code < 0 {
		return stack, false
	}
	return append(stack, byte(code)), true
}
