package domain

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultSourceLanguage is assumed when ingest cannot detect one.
const DefaultSourceLanguage = "en"

var SupportedLanguages = []string{"vi", "en", "zh", "ja", "ko", "es", "fr", "de", "ru", "pt", "th"}

func IsSupportedLanguage(code string) bool {
	return slices.Contains(SupportedLanguages, code)
}

var englishNames = display.Languages(language.English)

// LanguageName returns the English display name for an ISO code, or the code
// itself when it cannot be parsed.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := englishNames.Name(tag); name != "" {
		return name
	}
	return code
}

const (
	VoiceFemaleSoft = "female_soft"
	VoiceMaleWarm   = "male_warm"
)

var VoiceProfiles = []string{VoiceFemaleSoft, VoiceMaleWarm}

var voiceTable = map[string]map[string]string{
	"vi": {
		VoiceFemaleSoft: "vi-VN-HoaiMyNeural",
		VoiceMaleWarm:   "vi-VN-NamMinhNeural",
	},
	"en": {
		VoiceFemaleSoft: "en-US-JennyNeural",
		VoiceMaleWarm:   "en-US-GuyNeural",
	},
}

func IsVoiceProfile(id string) bool {
	return slices.Contains(VoiceProfiles, id)
}

// ResolveVoice maps a voice profile to a provider voice name for lang.
// Languages without their own table use the English voices.
func ResolveVoice(lang, profile string) (string, error) {
	table, ok := voiceTable[lang]
	if !ok {
		table = voiceTable[DefaultSourceLanguage]
	}
	name, ok := table[profile]
	if !ok {
		return "", fmt.Errorf("%w: unknown voice profile %q", ErrConfiguration, profile)
	}
	return name, nil
}

// TranslationPrompt instructs a language model to translate tagged lines and
// keep the [N] numbering intact.
func TranslationPrompt(sourceLang, targetLang string) string {
	return fmt.Sprintf(
		"You are a professional subtitle translator. Translate each line from %s to %s. "+
			"Every input line starts with a tag like [N]. Return exactly one line per input line, "+
			"keep each tag unchanged at the start of its line, and output nothing else.",
		LanguageName(sourceLang), LanguageName(targetLang))
}
