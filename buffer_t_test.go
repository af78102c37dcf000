//////////////////////////////////////////////////////////////////
//
// Copyright (c) 2026 YottaDB LLC and/or its subsidiaries.
// All rights reserved.
//
//	This source code contains the intellectual property
//	of its copyright holder(s), and is made available
//	under a license.  If you do not know the terms of
//	the license, please stop and do not read further.
//
//////////////////////////////////////////////////////////////////

package gtm

import (
	"bytes"
	"strings"
	"testing"

	assert "github.com/stretchr/testify/require"

	"lang.yottadb.com/go/gtm/gtmerr"
)

func TestBufferT(t *testing.T) {
	var buft BufferT
	buft.Alloc(16)
	defer buft.Free()

	n, err := buft.LenAlloc()
	assert.Nil(t, err)
	assert.Equal(t, uint32(16), n)
	n, err = buft.LenUsed()
	assert.Nil(t, err)
	assert.Equal(t, uint32(0), n)

	assert.Nil(t, buft.SetValStr("hello"))
	val, err := buft.ValStr()
	assert.Nil(t, err)
	assert.Equal(t, "hello", val)
	n, _ = buft.LenUsed()
	assert.Equal(t, uint32(5), n)
	assert.Equal(t, byte(0), buft.bytes()[5])

	assert.Nil(t, buft.SetValBAry([]byte{1, 0, 2}))
	bval, err := buft.ValBAry()
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 0, 2}, bval)

	assert.Nil(t, buft.SetLenUsed(1))
	val, _ = buft.ValStr()
	assert.Equal(t, "\x01", val)

	// Exactly the capacity fits; one more does not
	assert.Nil(t, buft.SetValStr(strings.Repeat("x", 16)))
	err = buft.SetValStr(strings.Repeat("x", 17))
	assert.True(t, ErrorIs(err, gtmerr.InvalidLength), err)
	err = buft.SetValBAry(make([]byte, 17))
	assert.True(t, ErrorIs(err, gtmerr.InvalidLength), err)
	err = buft.SetLenUsed(17)
	assert.True(t, ErrorIs(err, gtmerr.InvalidLength), err)
	assert.Contains(t, err.Error(), "INVSTRLEN")
}

func TestBufferTRealloc(t *testing.T) {
	var buft BufferT
	buft.Alloc(4)
	assert.Nil(t, buft.SetValStr("abcd"))
	buft.Alloc(8)
	defer buft.Free()
	n, _ := buft.LenUsed()
	assert.Equal(t, uint32(0), n)
	assert.Nil(t, buft.SetValStr("abcdefgh"))
}

func TestBufferTNotAllocd(t *testing.T) {
	var buft BufferT
	_, err := buft.LenAlloc()
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
	_, err = buft.LenUsed()
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
	_, err = buft.ValStr()
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
	_, err = buft.ValBAry()
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
	assert.True(t, ErrorIs(buft.SetValStr("x"), gtmerr.StructNotAllocd))
	assert.True(t, ErrorIs(buft.SetValBAry(nil), gtmerr.StructNotAllocd))
	assert.True(t, ErrorIs(buft.SetLenUsed(0), gtmerr.StructNotAllocd))

	// Free is idempotent and leaves the buffer unallocated
	buft.Alloc(1)
	buft.Free()
	buft.Free()
	_, err = buft.ValStr()
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))

	var nilbuf *BufferT
	_, err = nilbuf.ValStr()
	assert.True(t, ErrorIs(err, gtmerr.StructNotAllocd))
}

func TestBufferTDump(t *testing.T) {
	var buft BufferT
	var out bytes.Buffer
	buft.Dump(&out)
	assert.Contains(t, out.String(), "cbuftptr: 0x0")
	assert.NotContains(t, out.String(), "lenAlloc")

	buft.Alloc(8)
	defer buft.Free()
	assert.Nil(t, buft.SetValStr("dumped"))
	out.Reset()
	buft.Dump(&out)
	assert.Contains(t, out.String(), "lenAlloc: 8, length: 6, value: dumped")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestBufferTOutput(t *testing.T) {
	var buft BufferT
	buft.Alloc(4)
	defer buft.Free()

	buft.prepareOutput()
	assert.Equal(t, 5, int(buft.cbuft.length))

	// The engine fills the sentinel byte: truncated
	copy(buft.bytes(), "abcde")
	assert.True(t, buft.finishOutput())
	assert.Equal(t, "abcd", buft.str())
	assert.Equal(t, byte(0), buft.bytes()[4])

	// The engine returns fewer bytes than offered
	buft.prepareOutput()
	copy(buft.bytes(), "xy")
	buft.cbuft.length = 2
	assert.False(t, buft.finishOutput())
	assert.Equal(t, "xy", buft.str())
	assert.Equal(t, byte(0), buft.bytes()[2])

	buft.clear()
	assert.Equal(t, "", buft.str())
	assert.Equal(t, 0, buft.used())
}
