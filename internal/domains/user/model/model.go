package model

import (
	"time"

	"quadra/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldLevel          = "level"
	FieldFullName       = "full_name"
	FieldEnrollmentCode = "enrollment_code"
	FieldPhotoURL       = "photo_url"
	FieldActive         = "active"
	FieldLastLogin      = "last_login"
)

type User struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	Password       string     `db:"password"`
	Level          string     `db:"level"`
	FullName       string     `db:"full_name"`
	EnrollmentCode string     `db:"enrollment_code"`
	PhotoURL       *string    `db:"photo_url"`
	Active         bool       `db:"active"`
	LastLogin      *time.Time `db:"last_login"`
	model.Metadata
}
