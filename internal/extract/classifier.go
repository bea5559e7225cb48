package extract

import "strings"

// Notice type groups. The set is closed; unknown codes fall through to
// NoticeTypeOther.
const (
	NoticeTypePIN            = "PIN"
	NoticeTypeContractNotice = "CONTRACT_NOTICE"
	NoticeTypeContractAward  = "CONTRACT_AWARD"
	NoticeTypeModification   = "MODIFICATION"
	NoticeTypePlanning       = "PLANNING"
	NoticeTypeOther          = "OTHER"
)

// ClassifyTDCode maps a raw TED TD_DOCUMENT_TYPE code to a notice type
// group. Total: nil or unrecognised codes map to OTHER.
func ClassifyTDCode(tdCode *string) string {
	if tdCode == nil {
		return NoticeTypeOther
	}
	switch strings.ToUpper(strings.TrimSpace(*tdCode)) {
	case "0":
		return NoticeTypePIN
	case "3", "O", "V":
		return NoticeTypeContractNotice
	case "7":
		return NoticeTypeContractAward
	case "K":
		return NoticeTypeModification
	default:
		return NoticeTypeOther
	}
}

// awardCapableForms are the UK form variants that can carry an award.
var awardCapableForms = map[string]bool{
	"UK6_2023": true,
	"UK7_2023": true,
}

// ClassifyUKForm maps a UK form tag plus the document's release tags to a
// notice type group. Total: anything unrecognised maps to OTHER.
func ClassifyUKForm(formTag string, tags []string) string {
	if awardCapableForms[formTag] && containsTag(tags, "award") {
		return NoticeTypeContractAward
	}
	if containsTag(tags, "planning") {
		return NoticeTypePlanning
	}
	return NoticeTypeOther
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
