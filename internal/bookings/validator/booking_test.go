package validator

import (
	"errors"
	"testing"
	"time"

	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestValidator(t *testing.T) (*BookingValidator, model.Date) {
	t.Helper()
	v := NewBookingValidator(logger.Discard(), DefaultPolicy(), WithClock(func() time.Time { return fixedNow }))
	return v, model.DateOf(fixedNow)
}

func booking(name string, start, end *model.Date) *model.Booking {
	return &model.Booking{Name: name, StartDate: start, EndDate: end}
}

func TestValidate_Rules(t *testing.T) {
	v, today := newTestValidator(t)
	d := func(n int) *model.Date { return model.DatePtr(today.AddDays(n)) }

	tests := []struct {
		name      string
		booking   *model.Booking
		mode      Mode
		wantRule  error
		wantField string
		wantMax   int
	}{
		{
			name:    "valid create",
			booking: booking("Alice", d(1), d(4)),
			mode:    ModeCreate,
		},
		{
			name:    "valid update",
			booking: booking("Alice", d(2), d(3)),
			mode:    ModeUpdate,
		},
		{
			name:      "missing start date",
			booking:   booking("Alice", nil, d(4)),
			mode:      ModeCreate,
			wantRule:  ErrMissingField,
			wantField: "startDate",
		},
		{
			name:      "missing end date",
			booking:   booking("Alice", d(1), nil),
			mode:      ModeCreate,
			wantRule:  ErrMissingField,
			wantField: "endDate",
		},
		{
			name:      "start checked before end",
			booking:   booking("", nil, nil),
			mode:      ModeCreate,
			wantRule:  ErrMissingField,
			wantField: "startDate",
		},
		{
			name:      "reversed dates reported before missing name",
			booking:   booking("", d(5), d(2)),
			mode:      ModeCreate,
			wantRule:  ErrInvalidOrder,
			wantField: "startDate",
		},
		{
			name:      "missing name",
			booking:   booking("", d(1), d(2)),
			mode:      ModeCreate,
			wantRule:  ErrMissingField,
			wantField: "name",
		},
		{
			name:      "zero length stay",
			booking:   booking("Alice", d(2), d(2)),
			mode:      ModeCreate,
			wantRule:  ErrZeroLengthStay,
			wantField: "endDate",
		},
		{
			name:      "zero length stay today reported before lead time",
			booking:   booking("Alice", d(0), d(0)),
			mode:      ModeCreate,
			wantRule:  ErrZeroLengthStay,
			wantField: "endDate",
		},
		{
			name:      "start today",
			booking:   booking("Alice", d(0), d(2)),
			mode:      ModeCreate,
			wantRule:  ErrInsufficientLeadTime,
			wantField: "startDate",
		},
		{
			name:      "start in the past",
			booking:   booking("Alice", d(-3), d(-1)),
			mode:      ModeUpdate,
			wantRule:  ErrInsufficientLeadTime,
			wantField: "startDate",
		},
		{
			name:      "four day stay",
			booking:   booking("Alice", d(1), d(5)),
			mode:      ModeCreate,
			wantRule:  ErrStayTooLong,
			wantField: "endDate",
			wantMax:   3,
		},
		{
			name:    "start exactly max advance",
			booking: booking("Alice", d(30), d(32)),
			mode:    ModeCreate,
		},
		{
			name:      "start beyond max advance",
			booking:   booking("Alice", d(31), d(33)),
			mode:      ModeCreate,
			wantRule:  ErrTooFarInAdvance,
			wantField: "startDate",
			wantMax:   30,
		},
		{
			name:    "search allows past dates",
			booking: booking("", d(-10), d(-5)),
			mode:    ModeSearch,
		},
		{
			name:    "search allows same day",
			booking: booking("", d(3), d(3)),
			mode:    ModeSearch,
		},
		{
			name:    "search allows long ranges",
			booking: booking("", d(1), d(90)),
			mode:    ModeSearch,
		},
		{
			name:      "search rejects reversed dates",
			booking:   booking("", d(4), d(1)),
			mode:      ModeSearch,
			wantRule:  ErrInvalidOrder,
			wantField: "startDate",
		},
		{
			name:      "search requires dates",
			booking:   booking("", nil, d(1)),
			mode:      ModeSearch,
			wantRule:  ErrMissingField,
			wantField: "startDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.booking, tt.mode)
			if tt.wantRule == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantRule), "expected %v, got %v", tt.wantRule, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantMax, vErr.Max)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	v, today := newTestValidator(t)
	d := func(n int) *model.Date { return model.DatePtr(today.AddDays(n)) }

	tests := []struct {
		booking *model.Booking
		want    string
	}{
		{booking("Alice", nil, d(2)), "Missing value: startDate"},
		{booking("", d(1), d(2)), "Missing value: name"},
		{booking("Alice", d(3), d(1)), "startDate cannot be higher than endDate"},
		{booking("Alice", d(1), d(1)), "startDate cannot be same as endDate"},
		{booking("Alice", d(0), d(1)), "startDate is invalid: Reservations start at least the next day of booking"},
		{booking("Alice", d(1), d(6)), "Stays cannot be longer than 3 days"},
		{booking("Alice", d(40), d(41)), "Stays cannot be reserved more than 30 days in advance"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := v.Validate(tt.booking, ModeCreate)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidate_CustomPolicy(t *testing.T) {
	policy := Policy{MaxStayDays: 7, MaxAdvanceDays: 90}
	v := NewBookingValidator(logger.Discard(), policy, WithClock(func() time.Time { return fixedNow }))
	today := model.DateOf(fixedNow)

	assert.NoError(t, v.Validate(booking("Bob", model.DatePtr(today.AddDays(60)), model.DatePtr(today.AddDays(67))), ModeCreate))

	err := v.Validate(booking("Bob", model.DatePtr(today.AddDays(1)), model.DatePtr(today.AddDays(9))), ModeCreate)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "StayTooLong", vErr.RuleName())
	assert.Equal(t, 7, vErr.Max)
	assert.Equal(t, time.UTC, v.Policy().Location)
}

func TestValidate_TodayFollowsHotelTimeZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 20:00 UTC on March 10 is already March 11 at the hotel.
	now := time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()
	policy.Location = loc
	v := NewBookingValidator(logger.Discard(), policy, WithClock(func() time.Time { return now }))

	assert.Equal(t, model.NewDate(2026, time.March, 11), v.Today())

	err := v.Validate(booking("Carol", model.DatePtr(model.NewDate(2026, time.March, 11)), model.DatePtr(model.NewDate(2026, time.March, 12))), ModeCreate)
	assert.ErrorIs(t, err, ErrInsufficientLeadTime)

	err = v.Validate(booking("Carol", model.DatePtr(model.NewDate(2026, time.March, 12)), model.DatePtr(model.NewDate(2026, time.March, 13))), ModeCreate)
	assert.NoError(t, err)
}

func TestValidationError_Details(t *testing.T) {
	err := &ValidationError{Field: "endDate", Message: "Stays cannot be longer than 3 days", Rule: ErrStayTooLong, Max: 3}
	assert.Equal(t, map[string]any{"rule": "StayTooLong", "field": "endDate", "max": 3}, err.Details())

	err = &ValidationError{Field: "name", Message: "Missing value: name", Rule: ErrMissingField}
	assert.Equal(t, map[string]any{"rule": "MissingField", "field": "name"}, err.Details())
}
