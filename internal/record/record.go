// Package record implements ignitedb's on-disk log-record format: the
// encoding, decoding, and checksum validation of a single entry in a
// segment file.
//
// Layout (little-endian where multi-byte):
//
//	+------+----------+------------+-----+-------+-----+
//	| type | key_size | value_size | key | value | crc |
//	+------+----------+------------+-----+-------+-----+
//	  1 B    varint     varint      N B   M B    4 B
//
// key_size and value_size are base-128 varints. crc is a CRC-32 (IEEE
// polynomial) computed over every preceding byte of the record.
package record

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

// Type classifies a log record.
type Type byte

const (
	// Normal records a live key/value pair.
	Normal Type = iota + 1
	// Deleted is a tombstone: the key field names the deleted key, the
	// value field is empty.
	Deleted
	// TxnFinish is the sentinel that commits a transaction during replay.
	// Its key field carries the sequenced sentinel key (see pkg/batch).
	TxnFinish
)

// String renders a Type for logging and test failure messages.
func (t Type) String() string {
	switch t {
	case Normal:
		return "NORMAL"
	case Deleted:
		return "DELETED"
	case TxnFinish:
		return "TXN_FINISH"
	default:
		return "UNKNOWN"
	}
}

// MaxHeaderSize is the worst-case header length: 1 type byte plus two
// varint-encoded uint32 lengths, each up to 5 bytes.
const MaxHeaderSize = 1 + 2*binary.MaxVarintLen32

// ErrEOF signals a clean end of segment: either the underlying reader
// returned fewer bytes than requested because it has reached end of file,
// or the header buffer read back all zeroes. Recovery swallows ErrEOF;
// it never escapes Engine.Open.
var ErrEOF = errors.New("record: end of segment")

// ErrInvalidCRC indicates a decoded record's checksum did not match its
// payload. Fatal during replay.
var ErrInvalidCRC = errors.New("record: invalid crc")

// Record is the decoded, in-memory form of one log entry.
type Record struct {
	Type  Type
	Key   []byte
	Value []byte
}

// Encode serializes r into its on-disk byte form.
func Encode(r *Record) []byte {
	header := make([]byte, MaxHeaderSize)
	header[0] = byte(r.Type)
	n := 1
	n += binary.PutUvarint(header[n:], uint64(len(r.Key)))
	n += binary.PutUvarint(header[n:], uint64(len(r.Value)))

	total := n + len(r.Key) + len(r.Value) + 4
	buf := make([]byte, total)
	copy(buf, header[:n])
	copy(buf[n:], r.Key)
	copy(buf[n+len(r.Key):], r.Value)

	crc := crc32.ChecksumIEEE(buf[:n+len(r.Key)+len(r.Value)])
	binary.LittleEndian.PutUint32(buf[total-4:], crc)

	return buf
}

// Size returns the on-disk byte length Encode would produce for r, without
// allocating the encoded buffer. The engine's rotation check measures the
// encoded buffer itself; Size serves callers that need the length without
// encoding.
func Size(r *Record) int {
	keyLen := varintLen(uint64(len(r.Key)))
	valLen := varintLen(uint64(len(r.Value)))
	return 1 + keyLen + valLen + len(r.Key) + len(r.Value) + 4
}

func varintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// reader is the minimal positional-read capability decoding needs. Segment
// files satisfy it directly via os.File.ReadAt.
type reader interface {
	ReadAt(p []byte, off int64) (int, error)
}

// Decode reads one record from r starting at offset. It returns the decoded
// record and the total number of bytes it occupies on disk, so the caller
// can advance to the next record.
//
// Decode reads a fixed-size header-scan buffer first, parses the type and
// the two varints to find the true header length, then reads exactly
// |key|+|value|+4 more bytes. An all-zero header buffer, or a short read at
// end of file, is reported as ErrEOF.
func Decode(r reader, offset int64) (*Record, int64, error) {
	headerBuf := make([]byte, MaxHeaderSize)
	n, err := r.ReadAt(headerBuf, offset)
	if n == 0 {
		if err != nil && err != io.EOF {
			return nil, 0, err
		}
		return nil, 0, ErrEOF
	}
	headerBuf = headerBuf[:n]

	if isAllZero(headerBuf) {
		return nil, 0, ErrEOF
	}

	if n < 1 {
		return nil, 0, ErrEOF
	}
	recType := Type(headerBuf[0])

	keySize, keyN := binary.Uvarint(headerBuf[1:])
	if keyN <= 0 {
		return nil, 0, ErrEOF
	}
	valueSize, valN := binary.Uvarint(headerBuf[1+keyN:])
	if valN <= 0 {
		return nil, 0, ErrEOF
	}

	headerLen := 1 + keyN + valN
	payloadLen := int(keySize) + int(valueSize) + 4
	total := headerLen + payloadLen

	// The header-scan buffer may already contain some or all of the
	// payload bytes (it's read speculatively at MaxHeaderSize). Read
	// whatever remains beyond what we already have.
	payload := make([]byte, payloadLen)
	have := 0
	if len(headerBuf) > headerLen {
		have = copy(payload, headerBuf[headerLen:])
	}
	if have < payloadLen {
		pn, perr := r.ReadAt(payload[have:], offset+int64(headerLen+have))
		if have+pn < payloadLen {
			if perr != nil && perr != io.EOF {
				return nil, 0, perr
			}
			return nil, 0, ErrEOF
		}
	}

	key := payload[:keySize]
	value := payload[keySize : keySize+valueSize]
	storedCRC := binary.LittleEndian.Uint32(payload[payloadLen-4:])

	crc := crc32.NewIEEE()
	crc.Write(headerBuf[:headerLen])
	crc.Write(key)
	crc.Write(value)
	if crc.Sum32() != storedCRC {
		return nil, 0, ErrInvalidCRC
	}

	return &Record{Type: recType, Key: key, Value: value}, int64(total), nil
}

func isAllZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
