package validation

// Luhn reports whether number passes the Luhn checksum.
// Spaces and dashes are ignored; any other non-digit fails.
func Luhn(number string) bool {
	sum := 0
	digits := 0
	double := false

	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c == ' ' || c == '-' {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}

		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		digits++
		double = !double
	}

	return digits > 1 && sum%10 == 0
}
