package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"quadra/internal/domains/user/model"
	"quadra/shared"
	"quadra/shared/constant"
	gDto "quadra/shared/dto"
	gModel "quadra/shared/model"
	"quadra/shared/timezone"
)

type CreateUserRequest struct {
	FullName       string `json:"full_name"       validate:"required,max=100"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=6"`
	EnrollmentCode string `json:"enrollment_code" validate:"required,enrollment"`
	Level          string `json:"level"           validate:"omitempty,oneof=admin user"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	level := r.Level
	if level == "" {
		level = constant.RoleUser
	}

	return model.User{
		ID:             uuid.NewString(),
		Email:          r.Email,
		Password:       hashedPassword,
		Level:          level,
		FullName:       r.FullName,
		EnrollmentCode: r.EnrollmentCode,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Level          string  `json:"level"`
	FullName       string  `json:"full_name"`
	EnrollmentCode string  `json:"enrollment_code"`
	PhotoURL       *string `json:"photo_url,omitempty"`
	Active         bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.EnrollmentCode = model.EnrollmentCode
	r.PhotoURL = model.PhotoURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateProfileRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
}

type UpdatePhotoRequest struct {
	Photo     *multipart.FileHeader `json:"-"`
	PhotoFile multipart.File        `json:"-"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
