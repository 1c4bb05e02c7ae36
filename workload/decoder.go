package workload

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCorruptFile reports a file that does not match the expected layout.
var ErrCorruptFile = errors.New("corrupt workload file")

// readCount validates the u32 prefix against the payload length.
func readCount(data []byte, stride int) (int, error) {
	if len(data) < wordSize {
		return 0, fmt.Errorf("%w: %d bytes is shorter than the count prefix", ErrCorruptFile, len(data))
	}
	n := int(binary.LittleEndian.Uint32(data))
	if want := wordSize + n*stride; len(data) != want {
		return 0, fmt.Errorf("%w: count %d needs %d bytes, file has %d", ErrCorruptFile, n, want, len(data))
	}
	return n, nil
}

// UnmarshalInserts decodes a uniform-mode inserts file.
func UnmarshalInserts(data []byte) ([]Insert, error) {
	n, err := readCount(data, 2*wordSize)
	if err != nil {
		return nil, err
	}
	out := make([]Insert, n)
	body := data[wordSize:]
	for i := range out {
		out[i] = Insert{
			Key:   binary.LittleEndian.Uint32(body[8*i:]),
			Value: binary.LittleEndian.Uint32(body[8*i+4:]),
		}
	}
	return out, nil
}

// UnmarshalKeys decodes a uniform-mode lookups or removes file.
func UnmarshalKeys(data []byte) ([]uint32, error) {
	n, err := readCount(data, wordSize)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	body := data[wordSize:]
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(body[4*i:])
	}
	return out, nil
}

// UnmarshalActions decodes a partitioned-mode file.
func UnmarshalActions(data []byte) ([]Action, error) {
	n, err := readCount(data, RecordSize)
	if err != nil {
		return nil, err
	}
	out := make([]Action, n)
	for i := range out {
		rec := data[wordSize+i*RecordSize:][:RecordSize]
		field0 := binary.LittleEndian.Uint32(rec[4:])
		field1 := binary.LittleEndian.Uint32(rec[8:])
		switch tag := Kind(binary.LittleEndian.Uint32(rec)); tag {
		case KindInsert:
			out[i] = Insert{Key: field0, Value: field1}
		case KindLookup:
			out[i] = Lookup{Key: field0}
		case KindRemove:
			out[i] = Remove{Key: field0}
		default:
			return nil, fmt.Errorf("%w: record %d has unknown tag %d", ErrCorruptFile, i, uint32(tag))
		}
	}
	return out, nil
}
