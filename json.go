package runbits

import (
	"fmt"

	"github.com/goccy/go-json"
)

type jsonBitset struct {
	TotalBits *uint64     `json:"total_bits,omitempty"`
	Runs      [][2]uint32 `json:"runs"`
}

// MarshalJSON encodes b as {"total_bits":N,"runs":[[start,length],...]}.
func (b *Bitset) MarshalJSON() ([]byte, error) {
	total := b.totalBits
	doc := jsonBitset{
		TotalBits: &total,
		Runs:      make([][2]uint32, len(b.runs)),
	}
	for i, r := range b.runs {
		doc.Runs[i] = [2]uint32{r.Start, r.Length}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the format written by MarshalJSON. A missing
// total_bits defaults to the end of the last run.
func (b *Bitset) UnmarshalJSON(data []byte) error {
	var doc jsonBitset
	if err := json.Unmarshal(data, &doc); err != nil {
		return corruptWrap(0, "invalid json", err)
	}

	runs := make([]Run, len(doc.Runs))
	for i, pair := range doc.Runs {
		runs[i] = Run{Start: pair[0], Length: pair[1]}
	}

	var (
		decoded *Bitset
		err     error
	)
	if doc.TotalBits != nil {
		decoded, err = build(runs, *doc.TotalBits, true, 0)
	} else {
		decoded, err = build(runs, 0, false, 0)
	}
	if err != nil {
		return fmt.Errorf("decode json bitset: %w", err)
	}
	*b = *decoded
	return nil
}
