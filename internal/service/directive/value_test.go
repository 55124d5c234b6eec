package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw      string
		wantType ValueType
		wantNum  float64
		wantStr  string
	}{
		{raw: "12", wantType: ValueInt, wantNum: 12, wantStr: "12"},
		{raw: " 007 ", wantType: ValueInt, wantNum: 7, wantStr: "7"},
		{raw: "3.5", wantType: ValueFloat, wantNum: 3.5, wantStr: "3.5"},
		{raw: "70.0", wantType: ValueFloat, wantNum: 70, wantStr: "70.0"},
		{raw: "1.2.3", wantType: ValueString, wantStr: "1.2.3"},
		{raw: "-5", wantType: ValueString, wantStr: "-5"},
		{raw: "diabetes, asma", wantType: ValueString, wantStr: "diabetes, asma"},
		{raw: "99999999999999999999", wantType: ValueString, wantStr: "99999999999999999999"},
		{raw: "", wantType: ValueString, wantStr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := ParseValue(tt.raw)
			assert.Equal(t, tt.wantType, v.Type)
			assert.Equal(t, tt.wantStr, v.String())

			n, ok := v.Number()
			assert.Equal(t, tt.wantType != ValueString, ok)
			assert.Equal(t, tt.wantNum, n)
		})
	}
}
