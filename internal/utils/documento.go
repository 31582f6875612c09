package utils

// Mod-11 check digit validation for CPF and CNPJ.

// ValidateCPF reports whether the string carries a valid CPF, with or
// without the mask. Repeated-digit sequences (000..., 111...) are invalid.
func ValidateCPF(cpf string) bool {
	d := onlyDigits(cpf)
	if len(d) != 11 || allSame(d) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(d[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(d[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(d[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(d[10]-'0')
}

// ValidateCNPJ reports whether the string carries a valid CNPJ, with or
// without the mask.
func ValidateCNPJ(cnpj string) bool {
	d := onlyDigits(cnpj)
	if len(d) != 14 || allSame(d) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	sum := 0
	for i, w := range weights1 {
		sum += int(d[i]-'0') * w
	}
	if checkDigit(sum) != int(d[12]-'0') {
		return false
	}

	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	sum = 0
	for i, w := range weights2 {
		sum += int(d[i]-'0') * w
	}
	return checkDigit(sum) == int(d[13]-'0')
}

func checkDigit(sum int) int {
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
