package seeders

var equipmentTypesData = []struct {
	Name       string
	SerialMask string
}{
	// Маска: N - цифра, A - заглавная буква, a - строчная буква,
	// X - заглавная буква или цифра, Z - один из символов "-", "_", "@".
	{Name: "Ноутбук", SerialMask: "XXAAAAAXAA"},
	{Name: "Монитор", SerialMask: "NXXAAXZXXX"},
	{Name: "Принтер", SerialMask: "NAAANNNNNN"},
	{Name: "Маршрутизатор", SerialMask: "AAXXXXXXXX"},
	{Name: "Источник бесперебойного питания", SerialMask: "NNNNNNNNNN"},
	{Name: "Телефон IP", SerialMask: "AANNNNZNNN"},
}
