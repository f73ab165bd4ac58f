package directive

import (
	"regexp"
	"strings"
)

var (
	finalAnswerPattern = regexp.MustCompile(`(?i)final\s+answer\s*:\s*\**\s*\(?([A-D])\b`)
	letterPattern      = regexp.MustCompile(`\b([A-D])\b`)
)

// FinalAnswer finds the terminal `Final answer: X` marker. When a reply contains
// several markers the last one wins. The letter is returned upper case.
func FinalAnswer(text string) (string, bool) {
	return lastSubmatch(finalAnswerPattern, text)
}

// LastLetter returns the last standalone upper case letter A-D in text.
func LastLetter(text string) (string, bool) {
	return lastSubmatch(letterPattern, text)
}

func lastSubmatch(re *regexp.Regexp, text string) (string, bool) {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.ToUpper(matches[len(matches)-1][1]), true
}
