package dto

import (
	"github.com/google/uuid"

	"quadra/internal/domains/court/model"
	"quadra/shared"
	gDto "quadra/shared/dto"
	gModel "quadra/shared/model"
	"quadra/shared/timezone"
)

type CreateCourtRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Image       string `json:"image"       validate:"omitempty,url"`
	Active      *bool  `json:"active"      validate:"omitempty"`
}

func (c *CreateCourtRequest) ToModel(user string) model.Court {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Court{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCourtRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=255"`
	Image       string `db:"image"       json:"image"       validate:"omitempty,url"`
	Active      *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type CourtResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *CourtResponse) FromModel(model model.Court) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCourtsResponse struct {
	Courts    []CourtResponse `json:"courts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCourtsResponse) FromModels(models []model.Court, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Courts = make([]CourtResponse, len(models))
	for i, mod := range models {
		r.Courts[i].FromModel(mod)
	}
}
