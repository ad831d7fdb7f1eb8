package model

import "quadra/shared/model"

const (
	TableName  = "courts"
	EntityName = "court"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldActive      = "active"
)

type Court struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Image       string `db:"image"`
	Active      bool   `db:"active"`
	model.Metadata
}
