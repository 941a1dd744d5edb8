package lzw12

import "testing"

func TestEncodeDictFindReserve(t *testing.T) {
	var d encodeDict
	d.reset()

	index, found := d.find('A', 'B')
	if found {
		t.Fatalf("empty dictionary reported a hit")
	}
	if want := int('B')<<4 ^ 'A'; index != want {
		t.Fatalf("home slot=%d want %d", index, want)
	}
	d.reserve(index, FirstCode, 'A', 'B')

	again, found := d.find('A', 'B')
	if !found || again != index {
		t.Fatalf("find after reserve: index=%d found=%v", again, found)
	}
	if d.code(again) != FirstCode {
		t.Fatalf("code=%d want %d", d.code(again), FirstCode)
	}
}

func TestEncodeDictProbe(t *testing.T) {
	var d encodeDict
	d.reset()

	// (0x10, 0x01) and (0x00, 0x00) both hash to 0 with this key layout:
	// 0x01<<4 ^ 0x10 == 0.
	home, _ := d.find(0x10, 0x01)
	if home != 0 {
		t.Fatalf("home=%d want 0", home)
	}
	d.reserve(home, 300, 0x10, 0x01)

	// A collision at slot 0 steps by 1 and wraps to the end of the table.
	index, found := d.find(0x00, 0x00)
	if found {
		t.Fatalf("unexpected hit")
	}
	if index != dictSize-1 {
		t.Fatalf("probe slot=%d want %d", index, dictSize-1)
	}

	// A collision away from 0 steps by dictSize-index, which lands on
	// 2*index-dictSize (mod dictSize).
	home, _ = d.find(0x005, 'x')
	d.reserve(home, 301, 0x005, 'x')
	other := home ^ 0x005 ^ 0x00a
	// Force a collision by occupying the home slot of a second key.
	d.reserve(other, 302, 0xfff, 0xff)
	index, _ = d.find(0x00a, 'x')
	want := other - (dictSize - other)
	for want < 0 {
		want += dictSize
	}
	if index != want {
		t.Fatalf("probe slot=%d want %d", index, want)
	}
}

func TestEncodeDictFullCodeSpace(t *testing.T) {
	var d encodeDict
	d.reset()
	code := FirstCode
	for parent := 0; code <= MaxCode; parent++ {
		for c := 0; c < 256 && code <= MaxCode; c += 17 {
			index, found := d.find(parent, byte(c))
			if found {
				t.Fatalf("(%d,%d) already present", parent, c)
			}
			d.reserve(index, code, parent, byte(c))
			code++
		}
	}
	if d.used != MaxCode-FirstCode+1 {
		t.Fatalf("used=%d want %d", d.used, MaxCode-FirstCode+1)
	}
	seen := make(map[int]bool)
	for _, s := range d.slots {
		if s.code == unused {
			continue
		}
		if s.code < FirstCode || s.code > MaxCode || seen[int(s.code)] {
			t.Fatalf("bad or duplicate code %d", s.code)
		}
		seen[int(s.code)] = true
	}
	// A miss must still find a free slot in a full code space.
	if _, found := d.find(4000, 1); found {
		t.Fatalf("unexpected hit")
	}
}

func TestDecodeTableExpand(t *testing.T) {
	var tbl decodeTable
	tbl.reset()
	// 257 = "ab", 258 = "abc"
	tbl.set(257, 'a', 'b')
	tbl.set(258, 257, 'c')

	stack, ok := tbl.expand(nil, 258)
	if !ok || string(stack) != "cba" {
		t.Fatalf("expand(258)=%q,%v want \"cba\"", stack, ok)
	}
	stack, ok = tbl.expand(stack[:0], 'z')
	if !ok || string(stack) != "z" {
		t.Fatalf("expand literal=%q,%v", stack, ok)
	}
	if _, ok := tbl.expand(nil, 300); ok {
		t.Fatalf("expanding an unassigned code succeeded")
	}

	// A cycle can only come from corrupt input; it must not loop forever.
	tbl.set(259, 260, 'x')
	tbl.set(260, 259, 'y')
	if _, ok := tbl.expand(nil, 259); ok {
		t.Fatalf("expanding a cycle succeeded")
	}
}
