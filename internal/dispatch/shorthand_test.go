package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		want  singleAdd
	}{
		{
			name:  "three segments",
			input: "工作 + 專案 + 寫報告",
			ok:    true,
			want:  singleAdd{Category: "工作", SubCategory: "專案", Title: "寫報告"},
		},
		{
			name:  "fourth segment is the place",
			input: "a+b+c+d",
			ok:    true,
			want:  singleAdd{Category: "a", SubCategory: "b", Title: "c", Place: strptr("d")},
		},
		{
			name:  "fifth segment ignored",
			input: "a + b + c + d + e",
			ok:    true,
			want:  singleAdd{Category: "a", SubCategory: "b", Title: "c", Place: strptr("d")},
		},
		{name: "two segments", input: "a + b", ok: false},
		{name: "bare plus", input: "+", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSingle(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseBatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		want  batchAdd
	}{
		{
			name:  "two titles",
			input: "生活 + 採買 ++ 牛奶, 麵包",
			ok:    true,
			want:  batchAdd{Category: "生活", SubCategory: "採買", Titles: []string{"牛奶", "麵包"}},
		},
		{
			name:  "place on the left side",
			input: "生活 + 採買 + 超市 ++ 牛奶",
			ok:    true,
			want:  batchAdd{Category: "生活", SubCategory: "採買", Place: strptr("超市"), Titles: []string{"牛奶"}},
		},
		{
			name:  "empty titles skipped",
			input: "a + b ++ x, , y",
			ok:    true,
			want:  batchAdd{Category: "a", SubCategory: "b", Titles: []string{"x", "y"}},
		},
		{
			name:  "all titles empty",
			input: "a + b ++ , ,",
			ok:    true,
			want:  batchAdd{Category: "a", SubCategory: "b"},
		},
		{name: "more than one separator", input: "a + b ++ x ++ y", ok: false},
		{name: "missing sub-category", input: "a ++ x", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBatch(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func strptr(s string) *string { return &s }
