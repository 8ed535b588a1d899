package ignitedb

import (
	"encoding/binary"
	"time"

	"github.com/iamNilotpal/ignitedb/internal/engine"
)

// The core record format (internal/record, internal/engine) knows nothing
// about expiry: Put/Get store and return opaque value bytes. SetEX/GetEX
// implement expiring keys purely as a façade-level convention, wrapping
// the user value in an envelope of varint(expire_unix_nano) || value, with
// 0 meaning "never expires". Expiry is checked lazily on GetEX — an
// expired key is reported as not found but is not eagerly deleted, since
// this façade performs no compaction.

// SetEX stores value under key with a time-to-live. A ttl of zero or less
// means "no expiry"; the value is still stored inside the envelope, so it
// reads back unwrapped only through GetEX.
func (db *DB) SetEX(key, value []byte, ttl time.Duration) error {
	var expireAt int64
	if ttl > 0 {
		expireAt = time.Now().Add(ttl).UnixNano()
	}
	return db.eng.Put(key, encodeEnvelope(expireAt, value))
}

// GetEX retrieves the value stored under key, treating an expired entry
// as though it were absent.
func (db *DB) GetEX(key []byte) ([]byte, error) {
	raw, err := db.eng.Get(key)
	if err != nil {
		return nil, err
	}

	expireAt, value := decodeEnvelope(raw)
	if expireAt != 0 && time.Now().UnixNano() >= expireAt {
		return nil, engine.ErrKeyNotFound
	}
	return value, nil
}

func encodeEnvelope(expireAtUnixNano int64, value []byte) []byte {
	buf := make([]byte, binary.MaxVarintLen64+len(value))
	n := binary.PutUvarint(buf, uint64(expireAtUnixNano))
	return append(buf[:n], value...)
}

func decodeEnvelope(raw []byte) (expireAtUnixNano int64, value []byte) {
	v, n := binary.Uvarint(raw)
	return int64(v), raw[n:]
}
