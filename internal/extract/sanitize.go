package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// dateLayouts are the input formats we accept before normalizing to
// YYYY-MM-DD. Ambiguous numeric dates resolve day-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

var optionalStringFields = []string{"due_date", "currency", "email", "phone", "gst_number"}

var lineItemNumericFields = []string{"quantity", "unit_price", "unit_tax", "line_price"}

// NormalizeFields bridges model noise to the strict schema:
//   - empty-string optionals become null, never ""
//   - recognizable date formats are rewritten to YYYY-MM-DD
//   - absent or null numerics default to 1, never 0
//
// Every applied default is returned (and logged by the caller) so a
// defaulted record is distinguishable from an extracted one.
func NormalizeFields(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("normalize: decode: %w", err)
	}

	var applied []string
	note := func(path string) {
		applied = append(applied, path)
		logger.Debug("extract.default_applied", "field", path)
	}

	for _, k := range optionalStringFields {
		if v, ok := m[k]; ok {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				m[k] = nil
				note(k)
			}
		}
	}

	for _, k := range []string{"order_date", "due_date"} {
		if s, ok := m[k].(string); ok && s != "" {
			if norm, ok := normalizeDate(s); ok {
				m[k] = norm
			}
		}
	}

	for _, k := range []string{"total_amount", "tax"} {
		if v, ok := m[k]; !ok || v == nil {
			m[k] = float64(1)
			note(k)
		}
	}

	if items, ok := m["line_items"].([]any); ok {
		for i, it := range items {
			item, ok := it.(map[string]any)
			if !ok {
				continue
			}
			for _, k := range lineItemNumericFields {
				v, present := item[k]
				switch {
				case !present || v == nil:
					item[k] = float64(1)
					note(fmt.Sprintf("line_items[%d].%s", i, k))
				case k == "quantity":
					if n, isNum := v.(float64); isNum && n <= 0 {
						item[k] = float64(1)
						note(fmt.Sprintf("line_items[%d].quantity", i))
					}
				}
			}
		}
	}

	cleaned, err := json.Marshal(m)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: encode: %w", err)
	}
	return cleaned, applied, nil
}

// normalizeDate rewrites s to YYYY-MM-DD if it matches a known layout.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return s, false
}
