package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}

// validEmail accepts a bare address ("a@x.com"), not a display-name form.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndexByte(email, '@'):], ".")
}

// required returns a validation error naming the first blank field.
// pairs alternates field name and value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return validationErrorf("%s is required", pairs[i])
		}
	}
	return nil
}
