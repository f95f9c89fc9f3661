package exchange

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// The rates file is written by an external refresher on its own schedule.
// Rates are kept as strings in the file to avoid float drift on the way in.
//
//	rates:
//	  USD:
//	    KRW: "1350.25"
//	  EUR:
//	    KRW: "1460.00"
type ratesFile struct {
	Rates map[string]map[string]string `yaml:"rates"`
}

// FileSource re-reads the snapshot file on every call, so a refresher can
// swap the file underneath without coordinating with this process. A missing
// file yields an empty table: identity conversions still work, anything else
// reports ErrRateUnavailable.
type FileSource struct {
	Path string
}

func (f FileSource) Rates() (RateTable, error) {
	table, err := LoadRates(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return RateTable{}, nil
	}
	return table, err
}

// LoadRates reads a rate-table snapshot from a YAML file.
func LoadRates(path string) (RateTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", path, err)
	}
	var rf ratesFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rates file %s: %w", path, err)
	}

	table := make(RateTable, len(rf.Rates))
	for from, pairs := range rf.Rates {
		table[from] = make(map[string]decimal.Decimal, len(pairs))
		for to, raw := range pairs {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("bad rate %s/%s %q: %w", from, to, raw, err)
			}
			table[from][to] = rate
		}
	}
	return table, nil
}
