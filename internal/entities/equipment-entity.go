package entities

import (
	"inventory-system/pkg/types"
)

type Equipment struct {
	ID           uint64  `json:"id"`
	TypeID       uint64  `json:"type_id"`
	SerialNumber string  `json:"serial_number"`
	Note         *string `json:"note"`
	IsDeleted    bool    `json:"is_deleted"`

	types.BaseEntity // CreatedAt, UpdatedAt
}
