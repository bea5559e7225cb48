package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTDCode(t *testing.T) {
	tests := []struct {
		name string
		code *string
		want string
	}{
		{name: "nil code", code: nil, want: NoticeTypeOther},
		{name: "prior information", code: str("0"), want: NoticeTypePIN},
		{name: "contract notice 3", code: str("3"), want: NoticeTypeContractNotice},
		{name: "contract notice O", code: str("O"), want: NoticeTypeContractNotice},
		{name: "contract notice V", code: str("V"), want: NoticeTypeContractNotice},
		{name: "contract award", code: str("7"), want: NoticeTypeContractAward},
		{name: "modification", code: str("K"), want: NoticeTypeModification},
		{name: "lowercase normalised", code: str("k"), want: NoticeTypeModification},
		{name: "padded code", code: str(" 7 "), want: NoticeTypeContractAward},
		{name: "unknown code", code: str("Z"), want: NoticeTypeOther},
		{name: "empty code", code: str(""), want: NoticeTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTDCode(tt.code))
		})
	}
}

func TestClassifyUKForm(t *testing.T) {
	tests := []struct {
		name string
		form string
		tags []string
		want string
	}{
		{name: "UK7 with award tag", form: "UK7_2023", tags: []string{"award"}, want: NoticeTypeContractAward},
		{name: "UK6 with award tag", form: "UK6_2023", tags: []string{"tender", "award"}, want: NoticeTypeContractAward},
		{name: "award tag on non-award form", form: "UK3_2023", tags: []string{"award"}, want: NoticeTypeOther},
		{name: "planning tag", form: "UK1_2023", tags: []string{"planning"}, want: NoticeTypePlanning},
		{name: "award form without award tag falls through to planning", form: "UK7_2023", tags: []string{"planning"}, want: NoticeTypePlanning},
		{name: "no recognised tags", form: "UK2_2023", tags: []string{"tender"}, want: NoticeTypeOther},
		{name: "empty tags", form: "UK7_2023", tags: nil, want: NoticeTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUKForm(tt.form, tt.tags))
		})
	}
}
