package workload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/btree"
)

// Format names one of the three file layouts.
type Format string

const (
	FormatInserts Format = "insert"
	FormatKeys    Format = "keys"
	FormatActions Format = "mixed"
)

var validFormats = map[Format]bool{
	FormatInserts: true, FormatKeys: true, FormatActions: true,
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !validFormats[f] {
		return "", fmt.Errorf("%w: unknown format %q; valid: insert, keys, mixed", ErrConfiguration, s)
	}
	return f, nil
}

// InferFormat guesses the layout from the generator's file naming.
func InferFormat(path string) Format {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "inserts"):
		return FormatInserts
	case strings.HasPrefix(base, "lookups"), strings.HasPrefix(base, "removes"):
		return FormatKeys
	default:
		return FormatActions
	}
}

// FileSummary describes the decoded contents of one workload file.
type FileSummary struct {
	Path         string
	Format       Format
	Records      int
	Kinds        map[Kind]int
	DistinctKeys int
	MinKey       uint32
	MaxKey       uint32

	// Actions holds the decoded sequence for FormatActions files.
	Actions []Action
}

// Inspect decodes path with the given layout and summarizes its keys.
func Inspect(path string, format Format) (*FileSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	summary := &FileSummary{Path: path, Format: format, Kinds: make(map[Kind]int)}
	keys := btree.NewOrderedG[uint32](32)

	switch format {
	case FormatInserts:
		inserts, err := UnmarshalInserts(data)
		if err != nil {
			return nil, err
		}
		summary.Records = len(inserts)
		summary.Kinds[KindInsert] = len(inserts)
		for _, ins := range inserts {
			keys.ReplaceOrInsert(ins.Key)
		}
	case FormatKeys:
		ks, err := UnmarshalKeys(data)
		if err != nil {
			return nil, err
		}
		summary.Records = len(ks)
		for _, k := range ks {
			keys.ReplaceOrInsert(k)
		}
	case FormatActions:
		actions, err := UnmarshalActions(data)
		if err != nil {
			return nil, err
		}
		summary.Records = len(actions)
		summary.Actions = actions
		for _, a := range actions {
			summary.Kinds[a.Kind()]++
			keys.ReplaceOrInsert(ActionKey(a))
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrConfiguration, format)
	}

	summary.DistinctKeys = keys.Len()
	if lo, ok := keys.Min(); ok {
		summary.MinKey = lo
	}
	if hi, ok := keys.Max(); ok {
		summary.MaxKey = hi
	}
	return summary, nil
}

// CheckSubset verifies that every lookup and remove key in a mixed sequence
// was also inserted somewhere in that sequence.
func CheckSubset(actions []Action) error {
	inserted := btree.NewOrderedG[uint32](32)
	for _, a := range actions {
		if ins, ok := a.(Insert); ok {
			inserted.ReplaceOrInsert(ins.Key)
		}
	}
	for i, a := range actions {
		if a.Kind() == KindInsert {
			continue
		}
		if k := ActionKey(a); !inserted.Has(k) {
			return fmt.Errorf("%w: %s at record %d targets key %d that is never inserted",
				ErrCorruptFile, a.Kind(), i, k)
		}
	}
	return nil
}
