package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
)

// UKFormTags is the fixed probe order for the UK form-identifying
// elements, newest first. The first match wins even if several are
// present; the ordering is the documented tie-break. Future form tags
// must be added to this list, not detected some other way.
var UKFormTags = []string{
	"UK16_2023", "UK15_2023", "UK14_2023", "UK13_2023", "UK12_2023",
	"UK11_2023", "UK10_2023",
	"UK9_2023", "UK8_2023", "UK7_2023", "UK6_2023", "UK5_2023",
	"UK4_2023", "UK3_2023", "UK2_2023", "UK1_2023", "UK1_2022",
}

// XMLNotice classifies one raw XML notice and dispatches it to the
// matching adapter: any known UK form element selects the UK adapter, and
// everything else falls through to the TED adapter. Input that does not
// parse as XML at all yields a record carrying only the parse error.
func XMLNotice(xmlText string) *record.Record {
	top, err := xmlquery.Parse(strings.NewReader(xmlText))
	if err != nil {
		return &record.Record{
			ParseError: record.String(err.Error()),
		}
	}

	for _, tag := range UKFormTags {
		if node, _ := xmlquery.Query(top, "//"+tag); node != nil {
			return UKFormNotice(top, tag)
		}
	}

	return TEDNotice(top)
}
