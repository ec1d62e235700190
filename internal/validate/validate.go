// Package validate holds the client-side input checks that block a request
// before it ever reaches the network. Server-side validation remains
// authoritative.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrDatesRequired    = errors.New("check-in and check-out dates are required")
	ErrDatesOrder       = errors.New("check-out date must be after check-in date")
	ErrCommentTooShort  = errors.New("review comment must be at least 5 characters")
	ErrNameRequired     = errors.New("please enter a valid name")
	ErrNameHasDigits    = errors.New("name must not contain digits")
	ErrEmailRequired    = errors.New("please enter a valid email address")
	ErrPhoneShape       = errors.New("please enter a valid phone number (10-15 digits)")
	ErrPhoneRepeating   = errors.New("a sequence of repeating digits is not a valid phone number")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrMessageRequired  = errors.New("message text is required")
)

var (
	phoneRe     = regexp.MustCompile(`^\+?\d{10,15}$`)
	repeatingRe = regexp.MustCompile(`^(00+|11+|22+|33+|44+|55+|66+|77+|88+|99+)$`)
	nonDigitRe  = regexp.MustCompile(`\D`)
	digitRe     = regexp.MustCompile(`[0-9]`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("phone", phoneField)
	_ = val.RegisterValidation("nodigits", noDigitsField)
	return val
}

func phoneField(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	return phoneRe.MatchString(phone) && !IsRepeatingDigits(phone)
}

func noDigitsField(fl validator.FieldLevel) bool {
	return !digitRe.MatchString(fl.Field().String())
}

// SanitizePhone reduces free-form input to an optional leading plus followed
// by at most 15 digits, mirroring what the profile form accepts keystroke by
// keystroke.
func SanitizePhone(input string) string {
	if input == "" {
		return ""
	}
	hasPlus := strings.HasPrefix(input, "+")
	digits := nonDigitRe.ReplaceAllString(input, "")
	if len(digits) > 15 {
		digits = digits[:15]
	}
	if hasPlus {
		return "+" + digits
	}
	return digits
}

// IsRepeatingDigits reports whether every digit in the number is the same,
// e.g. "11111111111". Such numbers are rejected as fakes.
func IsRepeatingDigits(phone string) bool {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	return repeatingRe.MatchString(digits)
}

// BookingDates gates booking submission: both dates present and check-out
// strictly after check-in.
func BookingDates(start, end *time.Time) error {
	if start == nil || end == nil {
		return ErrDatesRequired
	}
	if !end.After(*start) {
		return ErrDatesOrder
	}
	return nil
}

type profileInput struct {
	FullName    string `validate:"required,nodigits"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"required,phone"`
}

// Profile validates the edit-profile form. The phone number is expected to be
// sanitized already; callers should run SanitizePhone on raw input first.
func Profile(fullName, email, phone string) error {
	phone = strings.TrimSpace(phone)
	if !phoneRe.MatchString(phone) {
		return ErrPhoneShape
	}
	if IsRepeatingDigits(phone) {
		return ErrPhoneRepeating
	}
	if strings.TrimSpace(fullName) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	in := profileInput{FullName: fullName, Email: email, PhoneNumber: phone}
	if err := v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "FullName":
				return ErrNameHasDigits
			case "Email":
				return ErrEmailRequired
			default:
				return ErrPhoneShape
			}
		}
		return err
	}
	return nil
}

// Review gates review submission: rating in range and a trimmed comment of at
// least five characters.
func Review(rating float64, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	if len(strings.TrimSpace(comment)) < 5 {
		return ErrCommentTooShort
	}
	return nil
}

// ContactMessage gates the contact form.
func ContactMessage(name, email, message string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(message) == "" {
		return ErrMessageRequired
	}
	return nil
}
