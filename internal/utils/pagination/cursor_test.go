package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyIsFirstPage(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestEncodeDecode(t *testing.T) {
	tok, err := Encode(Cursor{ID: "c-42", CreatedUnix: 1700000000123})
	require.NoError(t, err)

	c, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "c-42", c.ID)
	assert.Equal(t, int64(1700000000123), c.CreatedUnix)
}

func TestDecode_Garbage(t *testing.T) {
	for _, tok := range []string{
		"%%%",
		base64.URLEncoding.EncodeToString([]byte("{not json")),
		base64.URLEncoding.EncodeToString([]byte(`{"id":""}`)),
	} {
		_, err := Decode(tok)
		assert.Error(t, err, tok)
	}
}
