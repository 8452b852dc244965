package compare

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteRecord emits the comparison as a tab-separated table, one row per
// strategy, for downstream charting tools.
func WriteRecord(w io.Writer, c Comparison) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	header := []string{
		"strategy", "total_ms", "encoding_ms", "similarity_ms",
		"segmentation_ms", "matches", "chars", "matches_per_kb", "fallback",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range c.Entries {
		t := e.Result.Timing
		row := []string{
			e.Strategy,
			ms(t.Total),
			ms(t.Encoding),
			ms(t.Similarity),
			ms(t.Segmentation),
			strconv.Itoa(e.Matches),
			strconv.Itoa(e.Chars),
			strconv.FormatFloat(e.Density*1024, 'f', 3, 64),
			strconv.FormatBool(e.Result.Fallback),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ms(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Microseconds())/1000, 'f', 3, 64)
}
