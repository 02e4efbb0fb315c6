package model

// Bilingual holds the English and Portuguese variants of a user-facing
// string. Every text that reaches a member of the community is carried in
// both languages; the active language preference decides which variant a
// delivery surface renders.
type Bilingual struct {
	EN string `json:"en"`
	PT string `json:"pt"`
}

// In returns the variant for the given language code, falling back to
// English when the Portuguese text is empty or the code is unknown.
func (b Bilingual) In(lang string) string {
	if lang == LanguagePT && b.PT != "" {
		return b.PT
	}
	return b.EN
}

// Supported language preference codes.
const (
	LanguageEN = "en"
	LanguagePT = "pt"
)
