package dto

import "github.com/aarondl/null/v8"

// CreateEquipmentDTO - один кандидат пакетного добавления.
type CreateEquipmentDTO struct {
	TypeID       uint64      `json:"type_id" validate:"required"`
	SerialNumber string      `json:"serial_number" validate:"required,min=1,max=50"`
	Note         null.String `json:"note" validate:"omitempty,max=255"`
}

// UpdateEquipmentDTO - частичное обновление. Разрешенный набор полей
// ограничен type_id, serial_number и note; nil-поле означает "не трогать".
// Для note null.String отличает отсутствие поля от явного null.
type UpdateEquipmentDTO struct {
	TypeID       *uint64     `json:"type_id,omitempty" validate:"omitempty,gt=0"`
	SerialNumber *string     `json:"serial_number,omitempty" validate:"omitempty,min=1,max=50"`
	Note         null.String `json:"note,omitempty" validate:"omitempty,max=255"`
}

// IsEmpty - обновление без единого поля отклоняется.
func (d UpdateEquipmentDTO) IsEmpty() bool {
	return d.TypeID == nil && d.SerialNumber == nil && !d.Note.Valid
}

type EquipmentDTO struct {
	ID           uint64  `json:"id"`
	TypeID       uint64  `json:"type_id"`
	SerialNumber string  `json:"serial_number"`
	Note         *string `json:"note"`
	IsDeleted    bool    `json:"is_deleted"`
	CreatedAt    *string `json:"created_at,omitempty"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
}

// BatchAddResultDTO - итог пакетного добавления: сколько записей
// зафиксировано и сообщения по каждому неудачному кандидату.
type BatchAddResultDTO struct {
	Added  int      `json:"added"`
	Errors []string `json:"errors,omitempty"`
}
