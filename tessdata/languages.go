package tessdata

import (
	"slices"
	"strings"
)

// Language that can be downloaded from the tessdata repositories
type Language struct {
	Code string
	Name string
	// Approximate size of the trained data file in bytes
	Size int64
}

// Full name with code, e.g. "English (eng)"
func (l Language) DisplayName() string {
	return l.Name + " (" + l.Code + ")"
}

var catalog = []Language{
	{"eng", "English", 15_000_000},
	{"fra", "French", 15_000_000},
	{"deu", "German", 20_000_000},
	{"spa", "Spanish", 15_000_000},
	{"ita", "Italian", 15_000_000},
	{"por", "Portuguese", 15_000_000},
	{"rus", "Russian", 20_000_000},
	{"jpn", "Japanese", 35_000_000},
	{"chi_sim", "Chinese (Simplified)", 40_000_000},
	{"chi_tra", "Chinese (Traditional)", 45_000_000},
	{"kor", "Korean", 30_000_000},
	{"ara", "Arabic", 35_000_000},
	{"hin", "Hindi", 30_000_000},

	{"pol", "Polish", 20_000_000},
	{"tur", "Turkish", 20_000_000},
	{"ukr", "Ukrainian", 20_000_000},
	{"ces", "Czech", 20_000_000},
	{"hun", "Hungarian", 20_000_000},
	{"swe", "Swedish", 15_000_000},
	{"dan", "Danish", 15_000_000},
	{"nor", "Norwegian", 15_000_000},
	{"fin", "Finnish", 15_000_000},
	{"nld", "Dutch", 15_000_000},
	{"ell", "Greek", 20_000_000},
	{"bul", "Bulgarian", 20_000_000},
	{"hrv", "Croatian", 20_000_000},
	{"slk", "Slovak", 20_000_000},
	{"slv", "Slovenian", 20_000_000},
	{"srp", "Serbian", 20_000_000},
	{"ron", "Romanian", 20_000_000},
	{"sqi", "Albanian", 20_000_000},
	{"mkd", "Macedonian", 20_000_000},
	{"bos", "Bosnian", 20_000_000},
	{"bel", "Belarusian", 20_000_000},
	{"est", "Estonian", 15_000_000},
	{"lav", "Latvian", 15_000_000},
	{"lit", "Lithuanian", 15_000_000},
	{"isl", "Icelandic", 15_000_000},
	{"mlt", "Maltese", 15_000_000},
	{"cym", "Welsh", 15_000_000},
	{"gle", "Irish", 15_000_000},
	{"gla", "Scottish Gaelic", 15_000_000},
	{"cat", "Catalan", 15_000_000},
	{"eus", "Basque", 15_000_000},
	{"glg", "Galician", 15_000_000},
	{"cos", "Corsican", 15_000_000},
	{"oci", "Occitan", 15_000_000},

	{"tha", "Thai", 25_000_000},
	{"vie", "Vietnamese", 20_000_000},
	{"heb", "Hebrew", 15_000_000},
	{"ind", "Indonesian", 20_000_000},
	{"msa", "Malay", 20_000_000},
	{"tgl", "Tagalog", 20_000_000},
	{"ceb", "Cebuano", 15_000_000},
	{"jav", "Javanese", 15_000_000},
	{"sun", "Sundanese", 15_000_000},
	{"mya", "Burmese", 25_000_000},
	{"khm", "Khmer", 25_000_000},
	{"lao", "Lao", 25_000_000},
	{"mon", "Mongolian", 25_000_000},
	{"kat", "Georgian", 25_000_000},
	{"hye", "Armenian", 25_000_000},
	{"aze", "Azerbaijani", 20_000_000},
	{"kaz", "Kazakh", 20_000_000},
	{"kir", "Kyrgyz", 20_000_000},
	{"uzb", "Uzbek", 20_000_000},
	{"tgk", "Tajik", 20_000_000},
	{"tat", "Tatar", 20_000_000},
	{"uig", "Uyghur", 20_000_000},
	{"bod", "Tibetan", 30_000_000},
	{"dzo", "Dzongkha", 20_000_000},
	{"nep", "Nepali", 25_000_000},
	{"sin", "Sinhala", 25_000_000},
	{"div", "Dhivehi", 20_000_000},

	{"ben", "Bengali", 30_000_000},
	{"pan", "Punjabi", 25_000_000},
	{"guj", "Gujarati", 25_000_000},
	{"ori", "Odia", 25_000_000},
	{"tam", "Tamil", 25_000_000},
	{"tel", "Telugu", 25_000_000},
	{"kan", "Kannada", 25_000_000},
	{"mal", "Malayalam", 25_000_000},
	{"mar", "Marathi", 25_000_000},
	{"asm", "Assamese", 25_000_000},
	{"urd", "Urdu", 25_000_000},
	{"snd", "Sindhi", 25_000_000},
	{"pus", "Pashto", 25_000_000},
	{"san", "Sanskrit", 25_000_000},

	{"afr", "Afrikaans", 15_000_000},
	{"swa", "Swahili", 15_000_000},
	{"amh", "Amharic", 25_000_000},
	{"tir", "Tigrinya", 20_000_000},
	{"yor", "Yoruba", 15_000_000},
	{"hat", "Haitian Creole", 15_000_000},

	{"mri", "Maori", 15_000_000},
	{"ton", "Tongan", 15_000_000},

	{"epo", "Esperanto", 15_000_000},
	{"lat", "Latin", 15_000_000},
	{"grc", "Ancient Greek", 20_000_000},
	{"yid", "Yiddish", 15_000_000},
	{"chr", "Cherokee", 15_000_000},
	{"syr", "Syriac", 20_000_000},

	{"chi_sim_vert", "Chinese Simplified (Vertical)", 40_000_000},
	{"chi_tra_vert", "Chinese Traditional (Vertical)", 45_000_000},
	{"jpn_vert", "Japanese (Vertical)", 35_000_000},
	{"kor_vert", "Korean (Vertical)", 30_000_000},
	{"script/Arabic", "Arabic Script", 35_000_000},
	{"script/Armenian", "Armenian Script", 20_000_000},
	{"script/Bengali", "Bengali Script", 30_000_000},
	{"script/Canadian_Aboriginal", "Canadian Aboriginal Script", 20_000_000},
	{"script/Cherokee", "Cherokee Script", 15_000_000},
	{"script/Cyrillic", "Cyrillic Script", 20_000_000},
	{"script/Devanagari", "Devanagari Script", 30_000_000},
	{"script/Ethiopic", "Ethiopic Script", 25_000_000},
	{"script/Fraktur", "Fraktur Script", 20_000_000},
	{"script/Georgian", "Georgian Script", 20_000_000},
	{"script/Greek", "Greek Script", 20_000_000},
	{"script/Gujarati", "Gujarati Script", 25_000_000},
	{"script/Gurmukhi", "Gurmukhi Script", 25_000_000},
	{"script/HanS", "Han Simplified Script", 40_000_000},
	{"script/HanT", "Han Traditional Script", 45_000_000},
	{"script/Hangul", "Hangul Script", 30_000_000},
	{"script/Hebrew", "Hebrew Script", 15_000_000},
	{"script/Japanese", "Japanese Script", 35_000_000},
	{"script/Kannada", "Kannada Script", 25_000_000},
	{"script/Khmer", "Khmer Script", 25_000_000},
	{"script/Lao", "Lao Script", 25_000_000},
	{"script/Latin", "Latin Script", 15_000_000},
	{"script/Malayalam", "Malayalam Script", 25_000_000},
	{"script/Myanmar", "Myanmar Script", 25_000_000},
	{"script/Oriya", "Oriya Script", 25_000_000},
	{"script/Sinhala", "Sinhala Script", 25_000_000},
	{"script/Syriac", "Syriac Script", 20_000_000},
	{"script/Tamil", "Tamil Script", 25_000_000},
	{"script/Telugu", "Telugu Script", 25_000_000},
	{"script/Thaana", "Thaana Script", 20_000_000},
	{"script/Thai", "Thai Script", 25_000_000},
	{"script/Tibetan", "Tibetan Script", 30_000_000},
	{"script/Vietnamese", "Vietnamese Script", 20_000_000},
}

// Languages available for download, sorted by name
func Catalog() []Language {
	languages := slices.Clone(catalog)
	slices.SortStableFunc(languages, func(a, b Language) int {
		return strings.Compare(a.Name, b.Name)
	})
	return languages
}

func LookupLanguage(code string) (Language, bool) {
	i := slices.IndexFunc(catalog, func(l Language) bool { return l.Code == code })
	if i < 0 {
		return Language{}, false
	}
	return catalog[i], true
}

// Human readable name of the language. Unknown codes are returned as is.
func DisplayName(code string) string {
	if l, ok := LookupLanguage(code); ok {
		return l.Name
	}
	return code
}

var toTesseract = map[string]string{
	"en-US": "eng", "en": "eng",
	"fr-FR": "fra", "fr": "fra",
	"de-DE": "deu", "de": "deu",
	"es-ES": "spa", "es": "spa",
	"it-IT": "ita", "it": "ita",
	"pt-BR": "por", "pt": "por",
	"ru-RU": "rus", "ru": "rus",
	"ja-JP": "jpn", "ja": "jpn",
	"zh-Hans": "chi_sim", "zh-CN": "chi_sim",
	"zh-Hant": "chi_tra", "zh-TW": "chi_tra",
	"ko-KR": "kor", "ko": "kor",
	"ar-SA": "ara", "ar": "ara",
	"hi-IN": "hin", "hi": "hin",
	"th-TH": "tha", "th": "tha",
	"vi-VN": "vie", "vi": "vie",
	"he-IL": "heb", "he": "heb",
	"pl-PL": "pol", "pl": "pol",
	"tr-TR": "tur", "tr": "tur",
	"uk-UA": "ukr", "uk": "ukr",
	"cs-CZ": "ces", "cs": "ces",
	"hu-HU": "hun", "hu": "hun",
	"sv-SE": "swe", "sv": "swe",
	"da-DK": "dan", "da": "dan",
	"no-NO": "nor", "no": "nor",
	"fi-FI": "fin", "fi": "fin",
	"nl-NL": "nld", "nl": "nld",
	"el-GR": "ell", "el": "ell",
}

var fromTesseract = map[string]string{
	"eng": "en-US", "fra": "fr-FR", "deu": "de-DE", "spa": "es-ES", "ita": "it-IT",
	"por": "pt-BR", "rus": "ru-RU", "jpn": "ja-JP", "chi_sim": "zh-Hans", "chi_tra": "zh-Hant",
	"kor": "ko-KR", "ara": "ar-SA", "hin": "hi-IN", "tha": "th-TH", "vie": "vi-VN",
	"heb": "he-IL", "pol": "pl-PL", "tur": "tr-TR", "ukr": "uk-UA", "ces": "cs-CZ",
	"hun": "hu-HU", "swe": "sv-SE", "dan": "da-DK", "nor": "no-NO", "fin": "fi-FI",
	"nld": "nl-NL", "ell": "el-GR",
}

// Maps BCP 47 tag like "en-US" to tesseract code like "eng". Unknown codes are returned as is.
func ToTesseract(code string) string {
	if c, ok := toTesseract[code]; ok {
		return c
	}
	return code
}

// Maps tesseract code like "eng" to BCP 47 tag like "en-US". Unknown codes are returned as is.
func FromTesseract(code string) string {
	if c, ok := fromTesseract[code]; ok {
		return c
	}
	return code
}

// Splits tesseract language string "eng+deu" into codes. Empty parts are skipped.
func SplitLanguages(language string) []string {
	var codes []string
	for _, code := range strings.Split(language, "+") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// Joins language codes into tesseract language string, mapping BCP 47 tags on the way.
func JoinLanguages(codes ...string) string {
	mapped := make([]string, 0, len(codes))
	for _, code := range codes {
		mapped = append(mapped, ToTesseract(code))
	}
	return strings.Join(mapped, "+")
}
