package share

import (
	"net/url"
	"strings"

	"makhzan/internal/core/apperror"
)

// WhatsAppLink builds a wa.me click-to-chat URL for a phone number and
// a prepared message. The leading "+" is stripped, wa.me expects bare
// international digits.
func WhatsAppLink(phone, message string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if digits == "" {
		return "", apperror.NewValidation("partner has no phone number").
			WithDetail("field", "phone")
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message), nil
}
