package service

import (
	"fmt"
	"strings"

	"github.com/Raymond9734/customer-registry/internal/models"
	"github.com/Raymond9734/customer-registry/internal/validation"
)

const (
	firstNameMinLen = 2
	firstNameMaxLen = 20
	lastNameMinLen  = 2
	lastNameMaxLen  = 10
	emailMaxLen     = 100
	passwordMinLen  = 8
	passwordMaxLen  = 72 // bcrypt input limit, in bytes
	minCustomerAge  = 18
	maxCustomerAge  = 120
)

func nameRules[T any](field, label string, get func(T) string, minLen, maxLen int) validation.Rules[T] {
	present := func(s T) bool { return get(s) != "" }

	return validation.Rules[T]{
		{
			Field:   field,
			Message: label + " is required",
			Check:   func(s T) bool { return validation.NotBlank(get(s)) },
		},
		{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d characters", label, minLen, maxLen),
			When:    present,
			Check:   func(s T) bool { return validation.LengthBetween(get(s), minLen, maxLen) },
		},
		{
			Field:   field,
			Message: label + " can only contain letters and spaces",
			When:    present,
			Check:   func(s T) bool { return validation.LettersAndSpaces(get(s)) },
		},
	}
}

func emailRules[T any](get func(T) string) validation.Rules[T] {
	present := func(s T) bool { return get(s) != "" }

	return validation.Rules[T]{
		{
			Field:   "email",
			Message: "Email is required",
			Check:   present,
		},
		{
			Field:   "email",
			Message: "Email must be a valid email address",
			When:    present,
			Check:   func(s T) bool { return validation.IsEmail(get(s)) },
		},
		{
			Field:   "email",
			Message: fmt.Sprintf("Email cannot exceed %d characters", emailMaxLen),
			When:    present,
			Check:   func(s T) bool { return len(get(s)) <= emailMaxLen },
		},
	}
}

func passwordRules[T any](password, confirm func(T) string) validation.Rules[T] {
	hasPassword := func(s T) bool { return password(s) != "" }
	hasConfirm := func(s T) bool { return confirm(s) != "" }

	return validation.Rules[T]{
		{Field: "password", Message: "Password is required", Check: hasPassword},
		{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters", passwordMinLen),
			When:    hasPassword,
			Check:   func(s T) bool { return len([]rune(password(s))) >= passwordMinLen },
		},
		{
			Field:   "password",
			Message: fmt.Sprintf("Password cannot exceed %d bytes", passwordMaxLen),
			When:    hasPassword,
			Check:   func(s T) bool { return len(password(s)) <= passwordMaxLen },
		},
		{
			Field:   "password",
			Message: "Password must contain at least one uppercase letter",
			When:    hasPassword,
			Check:   func(s T) bool { return validation.HasUpper(password(s)) },
		},
		{
			Field:   "password",
			Message: "Password must contain at least one lowercase letter",
			When:    hasPassword,
			Check:   func(s T) bool { return validation.HasLower(password(s)) },
		},
		{
			Field:   "password",
			Message: "Password must contain at least one digit",
			When:    hasPassword,
			Check:   func(s T) bool { return validation.HasDigit(password(s)) },
		},
		{
			Field:   "password",
			Message: "Password must contain at least one special character",
			When:    hasPassword,
			Check:   func(s T) bool { return validation.HasSymbol(password(s)) },
		},
		{Field: "confirm_password", Message: "Please confirm your password", Check: hasConfirm},
		{
			Field:   "confirm_password",
			Message: "Password and confirmation password do not match",
			When:    hasConfirm,
			Check:   func(s T) bool { return confirm(s) == password(s) },
		},
	}
}

func termsRule[T any](accepted func(T) bool) validation.Rule[T] {
	return validation.Rule[T]{
		Field:   "terms_accepted",
		Message: "You must accept the terms and conditions",
		Check:   accepted,
	}
}

func dateOfBirthInPastRule[T any](dob func(T) *models.Date, today models.Date) validation.Rule[T] {
	return validation.Rule[T]{
		Field:   "date_of_birth",
		Message: "Date of birth must be in the past",
		When:    func(s T) bool { return dob(s) != nil },
		Check:   func(s T) bool { return dob(s).Before(today) },
	}
}

func passwordExcludesNameRule[T any](password, firstName, lastName func(T) string) validation.Rule[T] {
	return validation.Rule[T]{
		Field:   "password",
		Message: "Password must not contain your first or last name",
		Check: func(s T) bool {
			pw := password(s)
			return !validation.ContainsFold(pw, firstName(s)) && !validation.ContainsFold(pw, lastName(s))
		},
	}
}

// customerFieldRules is the per-field rule table of the full customer payload
func customerFieldRules(today models.Date) validation.Rules[*CustomerRequest] {
	var rules validation.Rules[*CustomerRequest]

	rules = append(rules, nameRules("first_name", "First name",
		func(r *CustomerRequest) string { return r.FirstName }, firstNameMinLen, firstNameMaxLen)...)
	rules = append(rules, nameRules("last_name", "Last name",
		func(r *CustomerRequest) string { return r.LastName }, lastNameMinLen, lastNameMaxLen)...)
	rules = append(rules, emailRules(func(r *CustomerRequest) string { return r.Email })...)

	rules = append(rules,
		validation.Rule[*CustomerRequest]{
			Field:   "age",
			Message: fmt.Sprintf("Age must be between %d and %d", minCustomerAge, maxCustomerAge),
			Check:   func(r *CustomerRequest) bool { return r.Age >= minCustomerAge && r.Age <= maxCustomerAge },
		},
		validation.Rule[*CustomerRequest]{
			Field:   "phone",
			Message: "Phone number must be in international format, e.g. +254712345678",
			When:    func(r *CustomerRequest) bool { return r.Phone != "" },
			Check:   func(r *CustomerRequest) bool { return validation.IsInternationalPhone(r.Phone) },
		},
		validation.Rule[*CustomerRequest]{
			Field:   "website",
			Message: "Website must be a valid URL",
			When:    func(r *CustomerRequest) bool { return r.Website != "" },
			Check:   func(r *CustomerRequest) bool { return validation.IsURL(r.Website) },
		},
		dateOfBirthInPastRule(func(r *CustomerRequest) *models.Date { return r.DateOfBirth }, today),
		validation.Rule[*CustomerRequest]{
			Field:   "salary",
			Message: "Salary must be a positive amount",
			When:    func(r *CustomerRequest) bool { return r.Salary != nil },
			Check:   func(r *CustomerRequest) bool { return *r.Salary > 0 },
		},
	)

	rules = append(rules, passwordRules(
		func(r *CustomerRequest) string { return r.Password },
		func(r *CustomerRequest) string { return r.ConfirmPassword },
	)...)

	rules = append(rules,
		validation.Rule[*CustomerRequest]{
			Field:   "credit_card_number",
			Message: "Credit card number is invalid",
			When:    func(r *CustomerRequest) bool { return r.CreditCardNumber != "" },
			Check:   func(r *CustomerRequest) bool { return validation.Luhn(r.CreditCardNumber) },
		},
		validation.Rule[*CustomerRequest]{
			Field:   "customer_type",
			Message: "Customer type must be one of " + customerTypeList(),
			Check:   func(r *CustomerRequest) bool { return r.CustomerType.IsValid() },
		},
		termsRule(func(r *CustomerRequest) bool { return r.TermsAccepted }),
	)

	return rules
}

// customerCrossFieldRules run once every field is well formed
func customerCrossFieldRules() validation.Rules[*CustomerRequest] {
	return validation.Rules[*CustomerRequest]{
		passwordExcludesNameRule(
			func(r *CustomerRequest) string { return r.Password },
			func(r *CustomerRequest) string { return r.FirstName },
			func(r *CustomerRequest) string { return r.LastName },
		),
	}
}

// registrationFieldRules is the per-field rule table of the registration payload,
// including the sign-up policy on email domain and derived age
func registrationFieldRules(today models.Date, disallowedDomains map[string]struct{}) validation.Rules[*RegistrationRequest] {
	var rules validation.Rules[*RegistrationRequest]

	rules = append(rules, nameRules("first_name", "First name",
		func(r *RegistrationRequest) string { return r.FirstName }, firstNameMinLen, firstNameMaxLen)...)
	rules = append(rules, nameRules("last_name", "Last name",
		func(r *RegistrationRequest) string { return r.LastName }, lastNameMinLen, lastNameMaxLen)...)
	rules = append(rules, emailRules(func(r *RegistrationRequest) string { return r.Email })...)

	pastDOB := func(r *RegistrationRequest) bool { return r.DateOfBirth != nil && r.DateOfBirth.Before(today) }
	age := func(r *RegistrationRequest) int { return validation.AgeOn(*r.DateOfBirth, today) }

	rules = append(rules,
		validation.Rule[*RegistrationRequest]{
			Field:   "email",
			Message: "Registrations from temporary email providers are not allowed",
			When:    func(r *RegistrationRequest) bool { return r.Email != "" },
			Check: func(r *RegistrationRequest) bool {
				_, blocked := disallowedDomains[validation.EmailDomain(r.Email)]
				return !blocked
			},
		},
		validation.Rule[*RegistrationRequest]{
			Field:   "date_of_birth",
			Message: "Date of birth is required",
			Check:   func(r *RegistrationRequest) bool { return r.DateOfBirth != nil },
		},
		dateOfBirthInPastRule(func(r *RegistrationRequest) *models.Date { return r.DateOfBirth }, today),
		validation.Rule[*RegistrationRequest]{
			Field:   "date_of_birth",
			Message: fmt.Sprintf("You must be at least %d years old to register", minCustomerAge),
			When:    pastDOB,
			Check:   func(r *RegistrationRequest) bool { return age(r) >= minCustomerAge },
		},
		validation.Rule[*RegistrationRequest]{
			Field:   "date_of_birth",
			Message: fmt.Sprintf("Date of birth indicates an age over %d years", maxCustomerAge),
			When:    pastDOB,
			Check:   func(r *RegistrationRequest) bool { return age(r) <= maxCustomerAge },
		},
	)

	rules = append(rules, passwordRules(
		func(r *RegistrationRequest) string { return r.Password },
		func(r *RegistrationRequest) string { return r.ConfirmPassword },
	)...)

	return append(rules, termsRule(func(r *RegistrationRequest) bool { return r.TermsAccepted }))
}

// registrationCrossFieldRules run once every registration field is well formed
func registrationCrossFieldRules() validation.Rules[*RegistrationRequest] {
	return validation.Rules[*RegistrationRequest]{
		passwordExcludesNameRule(
			func(r *RegistrationRequest) string { return r.Password },
			func(r *RegistrationRequest) string { return r.FirstName },
			func(r *RegistrationRequest) string { return r.LastName },
		),
	}
}

func customerTypeList() string {
	names := make([]string, len(models.CustomerTypes))
	for i, t := range models.CustomerTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
