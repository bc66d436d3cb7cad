package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultMaxStayDays    = 3
	DefaultMaxAdvanceDays = 30
)

// Mode selects which rules apply to a booking.
type Mode int

const (
	ModeSearch Mode = iota
	ModeCreate
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

var (
	ErrMissingField         = errors.New("missing value")
	ErrInvalidOrder         = errors.New("start date after end date")
	ErrZeroLengthStay       = errors.New("zero length stay")
	ErrInsufficientLeadTime = errors.New("insufficient lead time")
	ErrStayTooLong          = errors.New("stay too long")
	ErrTooFarInAdvance      = errors.New("too far in advance")
)

var ruleNames = map[error]string{
	ErrMissingField:         "MissingField",
	ErrInvalidOrder:         "InvalidOrder",
	ErrZeroLengthStay:       "ZeroLengthStay",
	ErrInsufficientLeadTime: "InsufficientLeadTime",
	ErrStayTooLong:          "StayTooLong",
	ErrTooFarInAdvance:      "TooFarInAdvance",
}

// ValidationError is the first rule a booking broke. Rule is one of the Err* sentinels.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    error  `json:"-"`
	Max     int    `json:"max,omitempty"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

func (v *ValidationError) Unwrap() error {
	return v.Rule
}

// RuleName returns the stable name of the broken rule, e.g. "StayTooLong".
func (v *ValidationError) RuleName() string {
	return ruleNames[v.Rule]
}

// Details renders the error for an API response.
func (v *ValidationError) Details() map[string]any {
	details := map[string]any{
		"rule":  v.RuleName(),
		"field": v.Field,
	}
	if v.Max > 0 {
		details["max"] = v.Max
	}
	return details
}

// Policy holds the hotel rules that are configuration rather than code.
type Policy struct {
	MaxStayDays    int
	MaxAdvanceDays int
	Location       *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		MaxStayDays:    DefaultMaxStayDays,
		MaxAdvanceDays: DefaultMaxAdvanceDays,
		Location:       time.UTC,
	}
}

type Option func(*BookingValidator)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(v *BookingValidator) {
		v.now = now
	}
}

type BookingValidator struct {
	validate *validator.Validate
	policy   Policy
	now      func() time.Time
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger, policy Policy, opts ...Option) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if policy.Location == nil {
		policy.Location = time.UTC
	}

	bv := &BookingValidator{
		validate: v,
		policy:   policy,
		now:      time.Now,
		logger:   log,
	}
	for _, opt := range opts {
		opt(bv)
	}

	log.Info("Booking validator initialized successfully",
		"max_stay_days", policy.MaxStayDays,
		"max_advance_days", policy.MaxAdvanceDays,
		"time_zone", policy.Location.String(),
	)

	return bv
}

func (v *BookingValidator) Policy() Policy {
	return v.policy
}

// Today returns the current calendar day in the hotel's time zone.
func (v *BookingValidator) Today() model.Date {
	return model.Today(v.now(), v.policy.Location)
}

// Validate applies the rules for mode in a fixed order and returns the first violation.
func (v *BookingValidator) Validate(booking *model.Booking, mode Mode) error {
	if err := v.requirePresent(booking, "StartDate", "EndDate"); err != nil {
		return err
	}

	start, end := *booking.StartDate, *booking.EndDate
	if start.After(end) {
		return &ValidationError{
			Field:   "startDate",
			Message: "startDate cannot be higher than endDate",
			Rule:    ErrInvalidOrder,
		}
	}

	if mode == ModeSearch {
		return nil
	}

	if err := v.requirePresent(booking, "Name"); err != nil {
		return err
	}

	if start.Equal(end) {
		return &ValidationError{
			Field:   "endDate",
			Message: "startDate cannot be same as endDate",
			Rule:    ErrZeroLengthStay,
		}
	}

	today := v.Today()
	if !start.After(today) {
		return &ValidationError{
			Field:   "startDate",
			Message: "startDate is invalid: Reservations start at least the next day of booking",
			Rule:    ErrInsufficientLeadTime,
		}
	}

	if start.DaysUntil(end) > v.policy.MaxStayDays {
		return &ValidationError{
			Field:   "endDate",
			Message: fmt.Sprintf("Stays cannot be longer than %d days", v.policy.MaxStayDays),
			Rule:    ErrStayTooLong,
			Max:     v.policy.MaxStayDays,
		}
	}

	if start.After(today.AddDays(v.policy.MaxAdvanceDays)) {
		return &ValidationError{
			Field:   "startDate",
			Message: fmt.Sprintf("Stays cannot be reserved more than %d days in advance", v.policy.MaxAdvanceDays),
			Rule:    ErrTooFarInAdvance,
			Max:     v.policy.MaxAdvanceDays,
		}
	}

	return nil
}

// requirePresent checks the named struct fields one at a time so the first missing one is reported.
func (v *BookingValidator) requirePresent(booking *model.Booking, fields ...string) error {
	for _, field := range fields {
		err := v.validate.StructPartial(booking, field)
		if err == nil {
			continue
		}
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return v.translateValidationError(validationErrs[0])
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationError(fe validator.FieldError) *ValidationError {
	switch fe.Tag() {
	case "required":
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("Missing value: %s", fe.Field()),
			Rule:    ErrMissingField,
		}
	default:
		v.logger.Warn("Unexpected validation tag", "field", fe.Field(), "tag", fe.Tag())
		return &ValidationError{
			Field:   fe.Field(),
			Message: fe.Error(),
			Rule:    ErrMissingField,
		}
	}
}
