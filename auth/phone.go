package auth

import "strings"

// PhoneDigits is the length of a complete phone number.
const PhoneDigits = 10

// CountryPrefix is shown in front of the masked number on the OTP screen.
const CountryPrefix = "+91"

// NormalizePhone keeps only the digits of raw and drops anything past the
// tenth digit, the way the phone input field does.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == PhoneDigits {
				break
			}
		}
	}
	return b.String()
}

func ValidatePhone(phone string) error {
	if len(phone) < PhoneDigits {
		return ErrPhoneTooShort
	}
	return nil
}

// DisplayPhone renders a number as "+91 98765 43210". Numbers that are not
// ten digits long are shown unformatted.
func DisplayPhone(phone string) string {
	if len(phone) > PhoneDigits {
		phone = phone[len(phone)-PhoneDigits:]
	}
	if len(phone) == PhoneDigits {
		phone = phone[:5] + " " + phone[5:]
	}
	return CountryPrefix + " " + phone
}
