package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "jane@example.com", want: "jane@example.com"},
		{name: "domain is lower-cased", input: "jane@EXAMPLE.COM", want: "jane@example.com"},
		{name: "local part keeps its case", input: "Jane.Doe@Example.Com", want: "Jane.Doe@example.com"},
		{name: "surrounding whitespace is trimmed", input: "  jane@Example.com\n", want: "jane@example.com"},
		{name: "last at sign splits", input: `"a@b"@Example.ORG`, want: `"a@b"@example.org`},
		{name: "fullwidth domain is folded", input: "jane@ＥＸＡＭＰＬＥ.com", want: "jane@example.com"},
		{name: "local part is not folded", input: "ｊａｎｅ@Example.com", want: "ｊａｎｅ@example.com"},
		{name: "ligature in local part is kept", input: "ﬁnance@Example.COM", want: "ﬁnance@example.com"},
		{name: "no at sign is left alone", input: " Jane ", want: "Jane"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestNormalizeEmail_Idempotent(t *testing.T) {
	for _, input := range []string{"Jane@EXAMPLE.com", " x@Y.z ", "plain", "ﬁ@ＥＸ.com"} {
		once := NormalizeEmail(input)
		assert.Equal(t, once, NormalizeEmail(once))
	}
}

func TestNormalizeEmail_DistinctLocalPartsStayDistinct(t *testing.T) {
	assert.NotEqual(t, NormalizeEmail("finance@example.com"), NormalizeEmail("ﬁnance@example.com"))
}
