package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/shopspring/decimal"
)

// validator collects the first failing rule; later checks become no-ops.
type validator struct {
	entity string
	err    error
}

func (v *validator) fail(field, format string, args ...any) {
	if v.err != nil {
		return
	}
	v.err = fmt.Errorf("%w: %s.%s %s", common.ErrValidation, v.entity, field, fmt.Sprintf(format, args...))
}

func (v *validator) maxLen(field, value string, max int) {
	if n := utf8.RuneCountInString(value); n > max {
		v.fail(field, "is %d characters, max %d", n, max)
	}
}

func (v *validator) required(field, value string) {
	if value == "" {
		v.fail(field, "is required")
	}
}

func (v *validator) nonNegative(field string, value int) {
	if value < 0 {
		v.fail(field, "must not be negative, got %d", value)
	}
}

func (v *validator) positive(field string, value int) {
	if value <= 0 {
		v.fail(field, "must be positive, got %d", value)
	}
}

func (v *validator) nonNegativeMoney(field string, value decimal.Decimal) {
	if value.IsNegative() {
		v.fail(field, "must not be negative, got %s", value.String())
	}
}

func (v *validator) positiveID(field string, value int64) {
	if value <= 0 {
		v.fail(field, "must reference an existing row, got %d", value)
	}
}

func (v *validator) oneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.fail(field, "must be one of %v, got %q", allowed, value)
}
