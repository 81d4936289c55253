// Package numerals converts between Latin and Arabic-Indic digits for the
// bilingual listing fields.
package numerals

import "strings"

var arabicToLatin = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
}

var latinToArabic = map[rune]rune{
	'0': '٠', '1': '١', '2': '٢', '3': '٣', '4': '٤',
	'5': '٥', '6': '٦', '7': '٧', '8': '٨', '9': '٩',
}

// HasArabicDigits reports whether s contains any Arabic-Indic or Extended
// Arabic-Indic digit.
func HasArabicDigits(s string) bool {
	for _, r := range s {
		if (r >= 0x0660 && r <= 0x0669) || (r >= 0x06F0 && r <= 0x06F9) {
			return true
		}
	}
	return false
}

// ToLatin rewrites Arabic-Indic digits as Latin digits, leaving everything
// else untouched.
func ToLatin(s string) string {
	return strings.Map(func(r rune) rune {
		if l, ok := arabicToLatin[r]; ok {
			return l
		}
		return r
	}, s)
}

// ToArabic rewrites Latin digits as Arabic-Indic digits, leaving everything
// else untouched.
func ToArabic(s string) string {
	return strings.Map(func(r rune) rune {
		if a, ok := latinToArabic[r]; ok {
			return a
		}
		return r
	}, s)
}

// Bilingual splits a user-typed numeric value into its Latin and Arabic
// renderings, whichever script it arrived in.
func Bilingual(s string) (latin, arabic string) {
	if HasArabicDigits(s) {
		return ToLatin(s), s
	}
	return s, ToArabic(s)
}
