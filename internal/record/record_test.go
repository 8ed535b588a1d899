package record

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// memReader is a minimal in-memory implementation of the package's reader
// interface, so record
// decoding can be tested without touching the filesystem.
type memReader []byte

func (m memReader) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m)) {
		return 0, io.EOF
	}
	n := copy(p, m[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		rec  *Record
	}{
		{"normal", &Record{Type: Normal, Key: []byte("name"), Value: []byte("ignitedb")}},
		{"deleted", &Record{Type: Deleted, Key: []byte("name"), Value: nil}},
		{"empty value", &Record{Type: Normal, Key: []byte("k"), Value: []byte{}}},
		{"large value", &Record{Type: Normal, Key: []byte("big"), Value: make([]byte, 4096)}},
		{"txn finish", &Record{Type: TxnFinish, Key: EncodeSeqKey(7, TxnFinishKey), Value: nil}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.rec)
			require.Equal(t, Size(tc.rec), len(encoded))

			decoded, n, err := Decode(memReader(encoded), 0)
			require.NoError(t, err)
			require.Equal(t, int64(len(encoded)), n)
			require.Equal(t, tc.rec.Type, decoded.Type)
			require.Equal(t, tc.rec.Key, decoded.Key)
			require.Equal(t, tc.rec.Value, decoded.Value)
		})
	}
}

func TestDecodeDetectsCRCCorruption(t *testing.T) {
	rec := &Record{Type: Normal, Key: []byte("name"), Value: []byte("bitcask-rs")}
	encoded := Encode(rec)

	// Flip every bit of one byte inside the value (sixth byte from the end).
	mutated := append([]byte(nil), encoded...)
	mutated[len(mutated)-6] ^= 0xFF

	_, _, err := Decode(memReader(mutated), 0)
	require.ErrorIs(t, err, ErrInvalidCRC)
}

func TestDecodeMultipleRecordsAtOffsets(t *testing.T) {
	r1 := &Record{Type: Normal, Key: []byte("k1"), Value: []byte("v1")}
	r2 := &Record{Type: Deleted, Key: []byte("k2"), Value: nil}

	buf := append(Encode(r1), Encode(r2)...)

	dec1, n1, err := Decode(memReader(buf), 0)
	require.NoError(t, err)
	require.Equal(t, r1.Key, dec1.Key)

	dec2, _, err := Decode(memReader(buf), n1)
	require.NoError(t, err)
	require.Equal(t, r2.Key, dec2.Key)
	require.Equal(t, Deleted, dec2.Type)
}

func TestDecodeCleanEOF(t *testing.T) {
	_, _, err := Decode(memReader(nil), 0)
	require.ErrorIs(t, err, ErrEOF)

	zeros := make(memReader, MaxHeaderSize)
	_, _, err = Decode(zeros, 0)
	require.ErrorIs(t, err, ErrEOF)
}

func TestSeqKeyRoundTrip(t *testing.T) {
	for _, seq := range []uint64{0, 1, 7, 1 << 40} {
		encoded := EncodeSeqKey(seq, []byte("hello"))
		gotSeq, gotKey := DecodeSeqKey(encoded)
		require.Equal(t, seq, gotSeq)
		require.Equal(t, []byte("hello"), gotKey)
	}
}
