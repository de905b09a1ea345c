package dto

type EquipmentTypeDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	SerialMask string `json:"serial_mask"`
}
