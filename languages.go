package catalogtl

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageAliases maps friendly names and lowercase codes to DeepL target codes.
var LanguageAliases = map[string]string{
	"ar": "AR", "arabic": "AR",
	"bg": "BG", "bulgarian": "BG",
	"cs": "CS", "czech": "CS",
	"da": "DA", "danish": "DA",
	"de": "DE", "german": "DE", "deutsch": "DE",
	"el": "EL", "greek": "EL",
	"en": "EN", "english": "EN",
	"en-us": "EN-US", "english-us": "EN-US",
	"en-gb": "EN-GB", "english-gb": "EN-GB", "british": "EN-GB",
	"es": "ES", "spanish": "ES", "espanol": "ES", "español": "ES",
	"et": "ET", "estonian": "ET",
	"fi": "FI", "finnish": "FI",
	"fr": "FR", "french": "FR", "français": "FR", "francais": "FR",
	"hu": "HU", "hungarian": "HU", "magyar": "HU",
	"id": "ID", "indonesian": "ID",
	"it": "IT", "italian": "IT",
	"ja": "JA", "japanese": "JA", "ja-jp": "JA",
	"ko": "KO", "korean": "KO", "ko-kr": "KO",
	"lt": "LT", "lithuanian": "LT",
	"lv": "LV", "latvian": "LV",
	"nb": "NB", "norwegian": "NB", "bokmal": "NB", "bokmål": "NB",
	"nl": "NL", "dutch": "NL",
	"pl": "PL", "polish": "PL",
	"pt": "PT-PT", "portuguese": "PT-PT", "pt-pt": "PT-PT",
	"pt-br": "PT-BR", "brazilian": "PT-BR",
	"ro": "RO", "romanian": "RO",
	"ru": "RU", "russian": "RU",
	"sk": "SK", "slovak": "SK",
	"sl": "SL", "slovenian": "SL", "slovene": "SL",
	"sv": "SV", "swedish": "SV",
	"tr": "TR", "turkish": "TR",
	"uk": "UK", "ukrainian": "UK",
	"zh": "ZH", "chinese": "ZH", "zh-cn": "ZH",
	"zh-hans": "ZH-HANS", "zh-hant": "ZH-HANT", "zh-tw": "ZH-HANT",
}

// LanguageNames maps DeepL target codes to human-readable names for AI prompts.
var LanguageNames = map[string]string{
	"AR":      "Arabic",
	"BG":      "Bulgarian",
	"CS":      "Czech",
	"DA":      "Danish",
	"DE":      "German",
	"EL":      "Greek",
	"EN":      "English",
	"EN-GB":   "English (United Kingdom)",
	"EN-US":   "English (United States)",
	"ES":      "Spanish",
	"ET":      "Estonian",
	"FI":      "Finnish",
	"FR":      "French",
	"HU":      "Hungarian",
	"ID":      "Indonesian",
	"IT":      "Italian",
	"JA":      "Japanese",
	"KO":      "Korean",
	"LT":      "Lithuanian",
	"LV":      "Latvian",
	"NB":      "Norwegian Bokmål",
	"NL":      "Dutch",
	"PL":      "Polish",
	"PT-BR":   "Portuguese (Brazil)",
	"PT-PT":   "Portuguese (Portugal)",
	"RO":      "Romanian",
	"RU":      "Russian",
	"SK":      "Slovak",
	"SL":      "Slovenian",
	"SV":      "Swedish",
	"TR":      "Turkish",
	"UK":      "Ukrainian",
	"ZH":      "Chinese (Simplified)",
	"ZH-HANS": "Chinese (Simplified)",
	"ZH-HANT": "Chinese (Traditional)",
}

// regionalTargets lists base languages whose region is part of the target code.
var regionalTargets = map[string]bool{
	"EN": true,
	"PT": true,
}

// NormalizeLanguage converts a user supplied language into a DeepL target
// code (e.g. "german" → "DE", "pt_br" → "PT-BR").
func NormalizeLanguage(input string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(input))
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "_", "-")
	if code == "" {
		return "", &InvalidLanguageError{Input: input}
	}

	if target, ok := LanguageAliases[code]; ok {
		return target, nil
	}
	if _, ok := LanguageNames[strings.ToUpper(code)]; ok {
		return strings.ToUpper(code), nil
	}

	// Fall back to BCP 47 parsing for tags like "de-AT" or "en-Latn-GB".
	tag, err := language.Parse(code)
	if err != nil {
		return "", &InvalidLanguageError{Input: input}
	}
	base, _ := tag.Base()
	target := strings.ToUpper(base.String())

	if regionalTargets[target] {
		if region, conf := tag.Region(); conf == language.Exact {
			if withRegion := target + "-" + region.String(); LanguageNames[withRegion] != "" {
				return withRegion, nil
			}
		}
		if target == "PT" {
			return "PT-PT", nil
		}
	}

	if _, ok := LanguageNames[target]; !ok {
		return "", &InvalidLanguageError{Input: input}
	}
	return target, nil
}

// GetLanguageName returns the human-readable name for a target code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[strings.ToUpper(langCode)]; ok {
		return name
	}
	if normalized, err := NormalizeLanguage(langCode); err == nil {
		return LanguageNames[normalized]
	}
	return langCode
}
