package mappers

import (
	api "github.com/AakashShahi/workday/api/v1alpha1"
	srvMappers "github.com/AakashShahi/workday/internal/service/mappers"
)

func JobFormApi(resource api.JobCreate) srvMappers.JobCreateForm {
	form := srvMappers.JobCreateForm{
		CategoryID:  resource.CategoryId,
		Title:       resource.Title,
		Description: resource.Description,
		Location:    resource.Location,
		Date:        resource.Date,
		Time:        resource.Time,
	}

	if resource.Price != nil {
		form.Price = *resource.Price
	}

	return form
}

func ReviewFormApi(resource api.ReviewCreate) srvMappers.ReviewForm {
	return srvMappers.ReviewForm{
		Rating:  resource.Rating,
		Comment: resource.Comment,
	}
}
