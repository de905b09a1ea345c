package validation

import (
	"fmt"
)

// Символы маски серийного номера:
//
//	N - цифра
//	A - заглавная латинская буква
//	a - строчная латинская буква
//	X - заглавная буква или цифра
//	Z - один из символов '-', '_', '@'
//
// Любой другой байт маски сравнивается буквально. Совпадение строгое,
// по всей строке: длина значения должна совпадать с длиной маски.
// Маска намеренно не транслируется в regexp, чтобы байт маски,
// совпадающий с метасимволом, оставался литералом.
type SerialMask struct {
	raw     string
	classes []func(byte) bool
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// CompileMask строит классификатор по позициям. Ошибка возможна только
// для пустой маски: это ошибка конфигурации типа оборудования.
func CompileMask(mask string) (*SerialMask, error) {
	if mask == "" {
		return nil, fmt.Errorf("маска серийного номера пуста")
	}

	classes := make([]func(byte) bool, len(mask))
	for i := 0; i < len(mask); i++ {
		switch mask[i] {
		case 'N':
			classes[i] = isDigit
		case 'A':
			classes[i] = isUpper
		case 'a':
			classes[i] = isLower
		case 'X':
			classes[i] = func(b byte) bool { return isUpper(b) || isDigit(b) }
		case 'Z':
			classes[i] = func(b byte) bool { return b == '-' || b == '_' || b == '@' }
		default:
			lit := mask[i]
			classes[i] = func(b byte) bool { return b == lit }
		}
	}

	return &SerialMask{raw: mask, classes: classes}, nil
}

// Matches проверяет точное соответствие значения маске.
func (m *SerialMask) Matches(s string) bool {
	if len(s) != len(m.classes) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !m.classes[i](s[i]) {
			return false
		}
	}
	return true
}

func (m *SerialMask) String() string {
	return m.raw
}
