package validation

import "github.com/Raymond9734/customer-registry/internal/models"

// AgeOn returns the age in whole years of someone born on dob, as of today.
// The count drops by one until this year's anniversary is reached.
func AgeOn(dob, today models.Date) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}
