package entities

type EquipmentType struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	SerialMask string `json:"serial_mask"`
}
