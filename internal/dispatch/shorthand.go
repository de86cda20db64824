package dispatch

import "strings"

// Shorthand grammar, single form:
//
//	主分類 + 子分類 + 名稱 [+ 地點]
//
// and batch form:
//
//	主分類 + 子分類 [+ 地點] ++ 項目1, 項目2, ...
//
// The grammar is a fixed split-and-trim tokenizer, nothing more.

type singleAdd struct {
	Category    string
	SubCategory string
	Title       string
	Place       *string
}

type batchAdd struct {
	Category    string
	SubCategory string
	Place       *string
	Titles      []string // empty segments already dropped
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseSingle reads the single form. Segments beyond the fourth are
// ignored. ok is false when fewer than three segments are present.
func parseSingle(text string) (singleAdd, bool) {
	parts := splitTrim(text, "+")
	if len(parts) < 3 {
		return singleAdd{}, false
	}
	req := singleAdd{
		Category:    parts[0],
		SubCategory: parts[1],
		Title:       parts[2],
	}
	if len(parts) >= 4 {
		req.Place = &parts[3]
	}
	return req, true
}

// parseBatch reads the batch form. The line must contain exactly one
// "++"; the left side needs at least category and sub-category. Titles
// that are empty after trimming are skipped.
func parseBatch(text string) (batchAdd, bool) {
	parts := splitTrim(text, "++")
	if len(parts) != 2 {
		return batchAdd{}, false
	}
	ctx := splitTrim(parts[0], "+")
	if len(ctx) < 2 {
		return batchAdd{}, false
	}
	req := batchAdd{
		Category:    ctx[0],
		SubCategory: ctx[1],
	}
	if len(ctx) >= 3 {
		req.Place = &ctx[2]
	}
	for _, title := range splitTrim(parts[1], ",") {
		if title != "" {
			req.Titles = append(req.Titles, title)
		}
	}
	return req, true
}
