package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-registry/internal/models"
)

func TestLuhn(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"4111111111111111", true},
		{"4111111111111112", false},
		{"4111 1111 1111 1111", true},
		{"4111-1111-1111-1111", true},
		{"79927398713", true},
		{"79927398710", false},
		{"4111a11111111111", false},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, Luhn(tt.number))
		})
	}
}

func TestAgeOn(t *testing.T) {
	today := models.NewDate(2024, time.June, 15)

	tests := []struct {
		name string
		dob  models.Date
		want int
	}{
		{"exactly eighteen years", models.NewDate(2006, time.June, 15), 18},
		{"one day short of eighteen", models.NewDate(2006, time.June, 16), 17},
		{"birthday earlier this year", models.NewDate(2000, time.January, 1), 24},
		{"birthday later this year", models.NewDate(2000, time.December, 31), 23},
		{"leap day birthday", models.NewDate(2004, time.February, 29), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeOn(tt.dob, today))
		})
	}
}

func TestPasswordPredicates(t *testing.T) {
	strong := func(pw string) bool {
		return LengthBetween(pw, 8, 1<<16) && HasUpper(pw) && HasLower(pw) && HasDigit(pw) && HasSymbol(pw)
	}

	assert.True(t, strong("Passw0rd!"))
	assert.False(t, strong("password"))
	assert.False(t, strong("PASSWORD1!"))
	assert.False(t, strong("Pa0!"))
	assert.False(t, strong("Pässw٣rd!"), "non-ASCII digits do not count")
	assert.True(t, HasSymbol("Pässw٣rd"), "non-ASCII digits count as symbols")
}

func TestFieldPredicates(t *testing.T) {
	assert.True(t, IsEmail("jane@example.com"))
	assert.False(t, IsEmail("jane@"))
	assert.False(t, IsEmail(""))

	assert.True(t, IsURL("https://example.com/about"))
	assert.False(t, IsURL("example.com"))
	assert.False(t, IsURL("mailto:jane@example.com"))

	assert.True(t, IsInternationalPhone("+254712345678"))
	assert.True(t, IsInternationalPhone("14155552671"))
	assert.False(t, IsInternationalPhone("0712345678"))
	assert.False(t, IsInternationalPhone("+1 415 555"))

	assert.True(t, LettersAndSpaces("Mary Ann"))
	assert.False(t, LettersAndSpaces("R2D2"))
	assert.False(t, LettersAndSpaces("Ja\tne"))
	assert.False(t, LettersAndSpaces("Jane\n"))

	assert.True(t, ContainsFold("JaneDoe#2024", "jane"))
	assert.False(t, ContainsFold("Passw0rd!", ""))

	assert.Equal(t, "tempmail.com", EmailDomain("someone@TempMail.com"))
	assert.Equal(t, "", EmailDomain("no-at-sign"))
}

type sample struct {
	Name     string
	Password string
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	fields := Rules[sample]{
		{Field: "name", Message: "name is required", Check: func(s sample) bool { return NotBlank(s.Name) }},
		{Field: "password", Message: "needs an uppercase letter", Check: func(s sample) bool { return HasUpper(s.Password) }},
		{Field: "password", Message: "needs a digit", Check: func(s sample) bool { return HasDigit(s.Password) }},
	}

	err := Validate(sample{Password: "abc"}, fields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidationFailed))

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name is required"}, verr.Fields["name"])
	assert.Equal(t, []string{"needs an uppercase letter", "needs a digit"}, verr.Fields["password"])
}

func TestValidate_SecondPassRunsOnlyWhenFirstIsClean(t *testing.T) {
	crossCalled := false
	fields := Rules[sample]{
		{Field: "name", Message: "name is required", Check: func(s sample) bool { return NotBlank(s.Name) }},
	}
	cross := Rules[sample]{
		{Field: "password", Message: "must not contain name", Check: func(s sample) bool {
			crossCalled = true
			return !ContainsFold(s.Password, s.Name)
		}},
	}

	err := Validate(sample{Password: "x"}, fields, cross)
	require.Error(t, err)
	assert.False(t, crossCalled)

	err = Validate(sample{Name: "Jane", Password: "janeSecret1!"}, fields, cross)
	require.Error(t, err)
	assert.True(t, crossCalled)

	assert.NoError(t, Validate(sample{Name: "Jane", Password: "Secret1!"}, fields, cross))
}

func TestRule_WhenGuardSkipsRule(t *testing.T) {
	rules := Rules[sample]{
		{
			Field:   "password",
			Message: "needs a digit",
			When:    func(s sample) bool { return s.Password != "" },
			Check:   func(s sample) bool { return HasDigit(s.Password) },
		},
	}

	assert.NoError(t, Validate(sample{}, rules))
	assert.Error(t, Validate(sample{Password: "abc"}, rules))
}
