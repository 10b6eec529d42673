package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()

	lettersAndSpaces = regexp.MustCompile(`^[A-Za-z ]+$`)
	internationalTel = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// NotBlank reports whether s has any non-space content
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// LengthBetween reports whether s has between minLen and maxLen characters
func LengthBetween(s string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(s)
	return n >= minLen && n <= maxLen
}

// LettersAndSpaces reports whether s holds only ASCII letters and spaces
func LettersAndSpaces(s string) bool {
	return lettersAndSpaces.MatchString(s)
}

// IsEmail reports whether s is a syntactically valid email address
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// IsURL reports whether s is an absolute http, https or ftp URL
func IsURL(s string) bool {
	if validate.Var(s, "required,url") != nil {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "ftp://")
}

// IsInternationalPhone reports whether s is up to 15 digits with an optional leading +
func IsInternationalPhone(s string) bool {
	return internationalTel.MatchString(s)
}

// HasUpper reports whether s contains an uppercase letter
func HasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

// HasLower reports whether s contains a lowercase letter
func HasLower(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

// HasDigit reports whether s contains an ASCII digit
func HasDigit(s string) bool {
	return strings.IndexFunc(s, isASCIIDigit) >= 0
}

// HasSymbol reports whether s contains a character that is neither a letter nor a digit
func HasSymbol(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !isASCIIDigit(r)
	}) >= 0
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ContainsFold reports whether substr occurs in s, ignoring case.
// An empty substr never matches.
func ContainsFold(s, substr string) bool {
	substr = strings.TrimSpace(substr)
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// EmailDomain returns the lowercased part after the last @, or ""
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}
