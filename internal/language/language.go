// Package language lists the languages offered for translation.
package language

import "slices"

// Language is a selectable translation language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
}

// Auto is the pseudo-language that asks the service to detect the source.
const Auto = "auto"

var supported = []Language{
	{Code: "auto", Name: "Auto-detect", NativeName: "Auto-detect"},
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "it", Name: "Italian", NativeName: "Italiano"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
	{Code: "ru", Name: "Russian", NativeName: "Русский"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh-CN", Name: "Chinese (Simplified)", NativeName: "中文 (简体)"},
	{Code: "zh-TW", Name: "Chinese (Traditional)", NativeName: "中文 (繁體)"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "th", Name: "Thai", NativeName: "ไทย"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands"},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska"},
	{Code: "da", Name: "Danish", NativeName: "Dansk"},
	{Code: "no", Name: "Norwegian", NativeName: "Norsk"},
	{Code: "fi", Name: "Finnish", NativeName: "Suomi"},
	{Code: "pl", Name: "Polish", NativeName: "Polski"},
	{Code: "cs", Name: "Czech", NativeName: "Čeština"},
	{Code: "sk", Name: "Slovak", NativeName: "Slovenčina"},
	{Code: "hu", Name: "Hungarian", NativeName: "Magyar"},
	{Code: "ro", Name: "Romanian", NativeName: "Română"},
	{Code: "bg", Name: "Bulgarian", NativeName: "Български"},
	{Code: "hr", Name: "Croatian", NativeName: "Hrvatski"},
	{Code: "sr", Name: "Serbian", NativeName: "Српски"},
	{Code: "sl", Name: "Slovenian", NativeName: "Slovenščina"},
	{Code: "et", Name: "Estonian", NativeName: "Eesti"},
	{Code: "lv", Name: "Latvian", NativeName: "Latviešu"},
	{Code: "lt", Name: "Lithuanian", NativeName: "Lietuvių"},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe"},
	{Code: "el", Name: "Greek", NativeName: "Ελληνικά"},
	{Code: "he", Name: "Hebrew", NativeName: "עברית"},
	{Code: "fa", Name: "Persian", NativeName: "فارسی"},
	{Code: "ur", Name: "Urdu", NativeName: "اردو"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം"},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
	{Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	{Code: "ne", Name: "Nepali", NativeName: "नेपाली"},
	{Code: "si", Name: "Sinhala", NativeName: "සිංහල"},
	{Code: "my", Name: "Myanmar", NativeName: "မြန်မာ"},
	{Code: "km", Name: "Khmer", NativeName: "ខ្មែរ"},
	{Code: "lo", Name: "Lao", NativeName: "ລາວ"},
	{Code: "ka", Name: "Georgian", NativeName: "ქართული"},
	{Code: "am", Name: "Amharic", NativeName: "አማርኛ"},
	{Code: "sw", Name: "Swahili", NativeName: "Kiswahili"},
	{Code: "zu", Name: "Zulu", NativeName: "isiZulu"},
	{Code: "af", Name: "Afrikaans", NativeName: "Afrikaans"},
	{Code: "sq", Name: "Albanian", NativeName: "Shqip"},
	{Code: "az", Name: "Azerbaijani", NativeName: "Azərbaycan"},
	{Code: "be", Name: "Belarusian", NativeName: "Беларуская"},
	{Code: "bs", Name: "Bosnian", NativeName: "Bosanski"},
	{Code: "eu", Name: "Basque", NativeName: "Euskera"},
	{Code: "gl", Name: "Galician", NativeName: "Galego"},
	{Code: "is", Name: "Icelandic", NativeName: "Íslenska"},
	{Code: "ga", Name: "Irish", NativeName: "Gaeilge"},
	{Code: "mk", Name: "Macedonian", NativeName: "Македонски"},
	{Code: "mt", Name: "Maltese", NativeName: "Malti"},
	{Code: "cy", Name: "Welsh", NativeName: "Cymraeg"},
	{Code: "yi", Name: "Yiddish", NativeName: "ייִדיש"},
}

// All returns the supported languages, auto-detect first.
func All() []Language {
	return slices.Clone(supported)
}

// Lookup returns the language with the given code.
func Lookup(code string) (Language, bool) {
	i := slices.IndexFunc(supported, func(l Language) bool { return l.Code == code })
	if i < 0 {
		return Language{}, false
	}
	return supported[i], true
}

// Name returns the English name for code, or code itself when unknown.
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return code
}

// NativeName returns the native name for code, or code itself when unknown.
func NativeName(code string) string {
	if l, ok := Lookup(code); ok {
		return l.NativeName
	}
	return code
}

// IsTarget reports whether code may be used as a translation target.
// Auto-detect is only valid as a source.
func IsTarget(code string) bool {
	_, ok := Lookup(code)
	return ok && code != Auto
}
