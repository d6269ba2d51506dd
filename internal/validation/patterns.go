package validation

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Name patterns allow Hebrew and Latin letters with a few punctuation marks.
// Node names additionally allow digits and quotes; the template name is the
// stricter historical form.
var (
	templateNameRe = regexp.MustCompile(`^[\x{0590}-\x{05FF}A-Z](?:[\x{0590}-\x{05FF} a-z]*[\x{0590}-\x{05FF}a-z])?$`)
	nodeNameRe     = regexp.MustCompile(`^[\x{0590}-\x{05FF}A-Z]+(?:[ '"\x{0590}-\x{05FF}a-z0-9]*[\x{0590}-\x{05FF}a-z0-9]+)*$`)
	hebrewNameRe   = regexp.MustCompile(`^[\x{0590}-\x{05FF}](?:[\x{0590}-\x{05FF} ]*[\x{0590}-\x{05FF}])?$`)
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe        = regexp.MustCompile(`^[0-9]{9,10}$`)
)

const (
	minNameLen = 2
	maxNameLen = 50
)

// TemplateName validates a trimmed template name and returns every failing
// check, the way the input layer has always reported it.
func TemplateName(name string) []string {
	var msgs []string
	if name == "" {
		return []string{"Questionnaire's name is required"}
	}
	n := utf8.RuneCountInString(name)
	if n < minNameLen {
		msgs = append(msgs, "Questionnaire's name must be at least 2 characters")
	}
	if n > maxNameLen {
		msgs = append(msgs, "Questionnaire's name must be less than 50 characters")
	}
	if !templateNameRe.MatchString(name) {
		msgs = append(msgs, "Questionnaire's name is not valid")
	}
	return msgs
}

// CollectionName validates a trimmed question-collection name.
func CollectionName(name string) []string {
	var msgs []string
	if name == "" {
		return []string{"שם אסופת השאלות הוא חובה"}
	}
	n := utf8.RuneCountInString(name)
	if n < minNameLen {
		msgs = append(msgs, "שם אסופת השאלות חייב להכיל לפחות 2 תווים")
	}
	if n > maxNameLen {
		msgs = append(msgs, "שם אסופת השאלות יכול להכיל עד 50 תווים")
	}
	if !nodeNameRe.MatchString(name) {
		msgs = append(msgs, "שם אסופת השאלות לא תקין")
	}
	return msgs
}

// UserName validates a trimmed account display name (Hebrew letters only).
func UserName(name string) []string {
	var msgs []string
	if name == "" {
		return []string{"שם משתמש הוא חובה"}
	}
	n := utf8.RuneCountInString(name)
	if n < minNameLen {
		msgs = append(msgs, "שם המשתמש חייב להכיל לפחות 2 תווים")
	}
	if n > maxNameLen {
		msgs = append(msgs, "שם המשתמש יכול להכיל עד 50 תווים")
	}
	if !hebrewNameRe.MatchString(name) {
		msgs = append(msgs, "שם המשתמש יכול להכיל רק אותיות בעברית")
	}
	return msgs
}

// Email validates an address.
func Email(email string) []string {
	if email == "" {
		return []string{"אימייל הוא חובה"}
	}
	if !emailRe.MatchString(email) {
		return []string{"אימייל לא תקין"}
	}
	return nil
}

// Password checks length and that at least one upper-case letter, lower-case
// letter, digit and special character are present.
func Password(password string) []string {
	var msgs []string
	if password == "" {
		return []string{"סיסמא היא חובה"}
	}
	n := utf8.RuneCountInString(password)
	if n < 8 {
		msgs = append(msgs, "הסיסמא חייב להכיל לפחות 8 תווים")
	}
	if n > maxNameLen {
		msgs = append(msgs, "הסיסמא יכולה להכיל עד 50 תווים")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		msgs = append(msgs, "הסיסמה חייבת להכיל לפחות אות גדולה אחת, אות קטנה אחת, מספר אחד ותו מיוחד אחד")
	}
	return msgs
}

// Phone validates a 9-10 digit phone number.
func Phone(phone string) []string {
	if !phoneRe.MatchString(phone) {
		return []string{"User's phone number is not valid"}
	}
	return nil
}
