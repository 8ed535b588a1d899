package record

import "encoding/binary"

// NonTxnSeqNo is the sequence number non-transactional writes use for their
// sequenced key. It is never allocated to a real transaction: the engine's
// seq_no_counter starts above it on a fresh database and only increases.
const NonTxnSeqNo uint64 = 0

// TxnFinishKey is the sentinel literal written as the user-key component of
// a TxnFinish record's sequenced key.
var TxnFinishKey = []byte("txn-fin")

// EncodeSeqKey prepends a varint-encoded seq_no to key, producing the
// sequenced key that is actually written to disk as a record's key field.
func EncodeSeqKey(seqNo uint64, key []byte) []byte {
	buf := make([]byte, binary.MaxVarintLen64+len(key))
	n := binary.PutUvarint(buf, seqNo)
	return append(buf[:n], key...)
}

// DecodeSeqKey splits a sequenced key (as read back from a log record) into
// its seq_no and the original user key.
func DecodeSeqKey(seqKey []byte) (seqNo uint64, userKey []byte) {
	seqNo, n := binary.Uvarint(seqKey)
	return seqNo, seqKey[n:]
}
