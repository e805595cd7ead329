package feed

import (
	"regexp"
	"strings"
)

// RawRange is a booked range exactly as extracted from the feed text:
// two YYYY-MM-DD strings that are syntactically well-formed but not yet
// calendar-validated. Validation happens when a consumer constructs
// real dates from them.
type RawRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const (
	eventBegin = "BEGIN:VEVENT"
	eventEnd   = "END:VEVENT"
)

// Airbnb/VRBO export availability blocks as all-day VEVENTs; the date
// may carry a VALUE=DATE marker.
var (
	reDtStart = regexp.MustCompile(`DTSTART(?:;VALUE=DATE)?:(\d{8})`)
	reDtEnd   = regexp.MustCompile(`DTEND(?:;VALUE=DATE)?:(\d{8})`)
)

// Parse extracts booked date ranges from raw iCal text.
//
// Each event block is an independent unit of work: blocks missing the
// end marker (truncated trailing data) or either date token are skipped
// silently, and no partial range is ever emitted. Ranges come out in
// source order, without dedup. A malformed feed degrades to an empty
// list rather than an error.
func Parse(raw string) []RawRange {
	var ranges []RawRange

	for _, block := range strings.Split(raw, eventBegin) {
		if !strings.Contains(block, eventEnd) {
			continue
		}
		start := reDtStart.FindStringSubmatch(block)
		end := reDtEnd.FindStringSubmatch(block)
		if start == nil || end == nil {
			continue
		}
		ranges = append(ranges, RawRange{
			Start: dashDate(start[1]),
			End:   dashDate(end[1]),
		})
	}

	return ranges
}

// dashDate reslices YYYYMMDD into YYYY-MM-DD. Purely positional; the
// token "20251332" passes through and fails later at date construction.
func dashDate(s string) string {
	return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
}
