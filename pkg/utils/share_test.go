package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sharePayload struct {
	Title string   `json:"title"`
	Tips  []string `json:"tips"`
}

func TestShareRoundTrip(t *testing.T) {
	original := sharePayload{Title: "京都散策", Tips: []string{"早起き", "歩きやすい靴"}}

	encoded, err := EncodeForSharing(original)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")

	decoded, err := DecodeShared[sharePayload](encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeForSharingTooLarge(t *testing.T) {
	big := sharePayload{Title: strings.Repeat("あ", MaxEncodedPlanBytes)}

	_, err := EncodeForSharing(big)
	assert.ErrorIs(t, err, ErrEncodingTooLarge)
}

func TestDecodeSharedCorrupt(t *testing.T) {
	_, err := DecodeShared[sharePayload]("not-base64!!!")
	assert.ErrorIs(t, err, ErrCorruptShareLink)

	// valid base64 but not the expected JSON
	_, err = DecodeShared[sharePayload]("bm90IGpzb24=")
	assert.ErrorIs(t, err, ErrCorruptShareLink)
}

func TestShareQRProducesPNG(t *testing.T) {
	png, err := ShareQR("https://example.com/shared?plan=abc")
	require.NoError(t, err)
	assert.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
