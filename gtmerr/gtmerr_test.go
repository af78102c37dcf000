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

package gtmerr

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestMnemonics(t *testing.T) {
	seen := map[string]int{}
	for code := Init; code <= NameReserved; code++ {
		m := Mnemonic(code)
		assert.NotEqual(t, "", m, "code %d has no mnemonic", code)
		prev, dup := seen[m]
		assert.False(t, dup, "mnemonic %s used by codes %d and %d", m, prev, code)
		seen[m] = code
		back, ok := Lookup(m)
		assert.True(t, ok)
		assert.Equal(t, code, back)
	}
	assert.Equal(t, "", Mnemonic(0))
	_, ok := Lookup("GVUNDEF")
	assert.False(t, ok)
}
