package models

import "regexp"

// e164Pattern matches an E.164 phone number: a leading '+', then 8-15 digits.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// ValidateMobilePhone reports whether phone is a plausible E.164 mobile
// number, the format the notification service requires before handing a
// number to Twilio.
func ValidateMobilePhone(phone string) bool {
	return e164Pattern.MatchString(phone)
}

// MaskMobilePhone masks all but the country code and last four digits of
// an E.164 number for safe logging, e.g. "+5511999998888" -> "+55*******8888".
func MaskMobilePhone(phone string) string {
	if !ValidateMobilePhone(phone) {
		return "****"
	}
	if len(phone) <= 7 {
		return "****"
	}
	visiblePrefix := 3 // '+' plus up to 2 country-code digits
	visibleSuffix := 4
	if len(phone)-visiblePrefix-visibleSuffix < 1 {
		return phone[:visiblePrefix] + "****"
	}
	masked := make([]byte, 0, len(phone))
	masked = append(masked, phone[:visiblePrefix]...)
	for i := 0; i < len(phone)-visiblePrefix-visibleSuffix; i++ {
		masked = append(masked, '*')
	}
	masked = append(masked, phone[len(phone)-visibleSuffix:]...)
	return string(masked)
}
