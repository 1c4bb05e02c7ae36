package workload

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Binary layout, little-endian throughout:
//
//	inserts file:  u32 count, then 2*count u32 (key, value, key, value, ...)
//	keys file:     u32 count, then count u32
//	actions file:  u32 count, then count records of RecordSize bytes:
//	               u32 tag, u32 field0, u32 field1 (zero for lookup/remove)
const (
	wordSize = 4

	// RecordSize is the stride of one action record, sized for the widest
	// arm (Insert: tag + key + value). Narrower arms are zero-padded.
	RecordSize = 3 * wordSize

	// Uniform-mode output file names.
	InsertsFileName = "inserts_sample.bin"
	LookupsFileName = "lookups_sample.bin"
	RemovesFileName = "removes_sample.bin"
)

// OutputFile describes one file written by WriteUniform or WritePartitioned.
type OutputFile struct {
	Name    string `yaml:"name"`
	Records int    `yaml:"records"`
	Bytes   int    `yaml:"bytes"`
}

// MarshalInserts encodes inserts as an untagged uniform-mode file.
func MarshalInserts(inserts []Insert) []byte {
	buf := make([]byte, 0, wordSize*(1+2*len(inserts)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(inserts)))
	for _, ins := range inserts {
		buf = binary.LittleEndian.AppendUint32(buf, ins.Key)
		buf = binary.LittleEndian.AppendUint32(buf, ins.Value)
	}
	return buf
}

// MarshalKeys encodes lookup or remove keys as an untagged uniform-mode file.
func MarshalKeys(keys []uint32) []byte {
	buf := make([]byte, 0, wordSize*(1+len(keys)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(keys)))
	for _, k := range keys {
		buf = binary.LittleEndian.AppendUint32(buf, k)
	}
	return buf
}

// MarshalActions encodes a mixed action sequence with fixed RecordSize stride.
func MarshalActions(actions []Action) []byte {
	buf := make([]byte, wordSize+RecordSize*len(actions))
	binary.LittleEndian.PutUint32(buf, uint32(len(actions)))
	for i, a := range actions {
		putRecord(buf[wordSize+i*RecordSize:][:RecordSize], a)
	}
	return buf
}

// putRecord fills a zeroed RecordSize slice.
func putRecord(rec []byte, a Action) {
	switch a := a.(type) {
	case Insert:
		binary.LittleEndian.PutUint32(rec[0:], uint32(KindInsert))
		binary.LittleEndian.PutUint32(rec[4:], a.Key)
		binary.LittleEndian.PutUint32(rec[8:], a.Value)
	case Lookup:
		binary.LittleEndian.PutUint32(rec[0:], uint32(KindLookup))
		binary.LittleEndian.PutUint32(rec[4:], a.Key)
	case Remove:
		binary.LittleEndian.PutUint32(rec[0:], uint32(KindRemove))
		binary.LittleEndian.PutUint32(rec[4:], a.Key)
	default:
		panic(fmt.Sprintf("workload: unknown action %T", a))
	}
}

// WriteFile writes a fully encoded file in one call.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logrus.Infof("wrote %s (%d bytes)", path, len(data))
	return nil
}

// WriteUniform writes the three uniform-mode files into dir.
func WriteUniform(dir string, w *UniformWorkload) ([]OutputFile, error) {
	files := []struct {
		name    string
		records int
		data    []byte
	}{
		{InsertsFileName, len(w.Inserts), MarshalInserts(w.Inserts)},
		{LookupsFileName, len(w.Lookups), MarshalKeys(w.Lookups)},
		{RemovesFileName, len(w.Removes), MarshalKeys(w.Removes)},
	}
	out := make([]OutputFile, 0, len(files))
	for _, f := range files {
		if err := WriteFile(filepath.Join(dir, f.name), f.data); err != nil {
			return out, err
		}
		out = append(out, OutputFile{Name: f.name, Records: f.records, Bytes: len(f.data)})
	}
	return out, nil
}

// WritePartitioned writes the single mixed-action file into dir.
func WritePartitioned(dir string, w *PartitionedWorkload) ([]OutputFile, error) {
	name := w.Partition.FileName()
	data := MarshalActions(w.Actions)
	if err := WriteFile(filepath.Join(dir, name), data); err != nil {
		return nil, err
	}
	return []OutputFile{{Name: name, Records: len(w.Actions), Bytes: len(data)}}, nil
}
