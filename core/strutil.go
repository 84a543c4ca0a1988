package core

// Itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Add space for negative sign
	if negative {
		digits++
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	if negative {
		buf[0] = '-'
	}

	return string(buf)
}

// Utoa converts an unsigned integer to a string
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

// Ftoa converts a float to a fixed-point decimal string with the given
// number of fractional digits. Rounds half away from zero.
func Ftoa(f float32, decimals int) string {
	scale := 1
	for i := 0; i < decimals; i++ {
		scale *= 10
	}

	negative := f < 0
	if negative {
		f = -f
	}

	scaled := int(float64(f)*float64(scale) + 0.5)
	whole := scaled / scale
	frac := scaled % scale

	s := Itoa(whole)
	if negative && scaled != 0 {
		s = "-" + s
	}
	if decimals == 0 {
		return s
	}

	fs := Itoa(frac)
	for len(fs) < decimals {
		fs = "0" + fs
	}
	return s + "." + fs
}
