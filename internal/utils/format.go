// Package utils holds pt-BR formatting helpers and password utilities.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate renders a date as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateTime renders a timestamp as dd/mm/yyyy hh:mm.
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// FormatCurrency renders a value in BRL, e.g. 1234.5 → "R$ 1.234,50".
func FormatCurrency(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	s := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPhone masks a Brazilian phone number: (11) 91234-5678 for mobile,
// (11) 1234-5678 for landline. Unrecognized lengths are returned as given.
func FormatPhone(phone string) string {
	digits := onlyDigits(phone)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[0:2], digits[2:7], digits[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[0:2], digits[2:6], digits[6:])
	default:
		return phone
	}
}

// FormatCPF masks a CPF: 12345678909 → 123.456.789-09.
func FormatCPF(cpf string) string {
	d := onlyDigits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:])
}

// FormatCNPJ masks a CNPJ: 11222333000181 → 11.222.333/0001-81.
func FormatCNPJ(cnpj string) string {
	d := onlyDigits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:])
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
