package takeout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty cell",
			in:   "",
			want: "",
		},
		{
			name: "plain text without wrapper",
			in:   "just a plain comment",
			want: "just a plain comment",
		},
		{
			name: "doubled quotes from CSV escaping",
			in:   `{""text"":""Great video!""}`,
			want: "Great video!",
		},
		{
			name: "escaped newline",
			in:   `""text"":""Great video!\nThanks""`,
			want: "Great video!\nThanks",
		},
		{
			name: "escaped quote inside text",
			in:   `{"text":"he said \"hi\" there"}`,
			want: `he said "hi" there`,
		},
		{
			name: "escaped backslash and slash",
			in:   `{"text":"a\\b and a\/b"}`,
			want: `a\b and a/b`,
		},
		{
			name: "multiple formatting runs joined with one space",
			in:   `{"text":"first"},{"text":"second"},{"text":"third"}`,
			want: "first second third",
		},
		{
			name: "no text key leaves malformed input untouched",
			in:   `{""takeout"":1}`,
			want: `{""takeout"":1}`,
		},
		{
			name: "unknown escape passes through",
			in:   `{"text":"tab\there"}`,
			want: `tab\there`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCleanTextNoWrapperIsByteIdentical(t *testing.T) {
	in := "emoji \U0001F600 and unicode é stay as they are"
	assert.Equal(t, in, CleanText(in))
}
