package mappers

import (
	api "github.com/AakashShahi/workday/api/v1alpha1"
	"github.com/AakashShahi/workday/internal/store/model"
)

func JobToApi(j model.Job) api.Job {
	job := api.Job{
		Id:                j.ID,
		PostedBy:          j.PostedBy,
		CategoryId:        j.CategoryID,
		CategoryIcon:      j.CategoryIcon,
		Title:             j.Title,
		Description:       j.Description,
		Location:          j.Location,
		Price:             j.Price,
		Date:              j.Date,
		Time:              j.Time,
		ScheduledAt:       j.ScheduledAt,
		Status:            api.JobStatus(j.Status),
		ReviewId:          j.ReviewID,
		HiddenByRequester: j.HiddenByRequester,
		HiddenByProvider:  j.HiddenByProvider,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}

	// unassigned is absent on the wire, not an empty id
	if j.IsAssigned() {
		assignedTo := j.AssignedTo
		job.AssignedTo = &assignedTo
	}

	return job
}

func JobListToApi(jobs model.JobList) api.JobList {
	jobList := make(api.JobList, 0, len(jobs))
	for _, j := range jobs {
		jobList = append(jobList, JobToApi(j))
	}
	return jobList
}

func ReviewToApi(r model.Review) api.Review {
	return api.Review{
		Id:          r.ID,
		JobId:       r.JobID,
		ProviderId:  r.ProviderID,
		RequesterId: r.RequesterID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func ReviewListToApi(reviews model.ReviewList) api.ReviewList {
	reviewList := make(api.ReviewList, 0, len(reviews))
	for _, r := range reviews {
		reviewList = append(reviewList, ReviewToApi(r))
	}
	return reviewList
}
