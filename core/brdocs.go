package core

// ValidCPF checks a brazilian individual taxpayer number (11 digits, two mod-11 check digits).
// Masks are ignored; sequences of one repeated digit are rejected.
func ValidCPF(cpf string) bool {
	d := Digits(cpf)
	if len(d) != 11 || allSame(d) {
		return false
	}
	return cpfCheckDigit(d[:9], 10) == int(d[9]-'0') && cpfCheckDigit(d[:10], 11) == int(d[10]-'0')
}

func cpfCheckDigit(d string, weight int) int {
	sum := 0
	for i := 0; i < len(d); i++ {
		sum += int(d[i]-'0') * (weight - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 {
		rem = 0
	}
	return rem
}

// ValidCNPJ checks a brazilian company taxpayer number (14 digits, two mod-11 check digits).
func ValidCNPJ(cnpj string) bool {
	d := Digits(cnpj)
	if len(d) != 14 || allSame(d) {
		return false
	}
	first := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	second := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return cnpjCheckDigit(d[:12], first) == int(d[12]-'0') && cnpjCheckDigit(d[:13], second) == int(d[13]-'0')
}

func cnpjCheckDigit(d string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(d[i]-'0') * w
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// ValidPhone accepts 10 or 11 digits once the mask is stripped.
func ValidPhone(phone string) bool {
	n := len(Digits(phone))
	return n >= 10 && n <= 11
}

// MaskCPF formats as 000.000.000-00, progressively for partial input.
func MaskCPF(cpf string) string {
	d := Digits(cpf)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	}
	if len(d) > 11 {
		d = d[:11]
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// MaskPhone formats as (00) 00000-0000.
func MaskPhone(phone string) string {
	d := Digits(phone)
	if len(d) < 2 {
		return "(" + d + ") "
	}
	if len(d) <= 7 {
		return "(" + d[:2] + ") " + d[2:]
	}
	end := len(d)
	if end > 11 {
		end = 11
	}
	return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:end]
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
