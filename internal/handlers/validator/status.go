package validator

import (
	"strings"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/thoas/go-funk"
)

var knownStatuses = []string{
	string(model.JobStatusOpen),
	string(model.JobStatusAssigned),
	string(model.JobStatusRequested),
	string(model.JobStatusInProgress),
	string(model.JobStatusDone),
	string(model.JobStatusFailed),
}

// JobStatuses parses the status query values. Each value may itself be a
// comma separated list; duplicates are dropped.
func JobStatuses(values []string) ([]model.JobStatus, error) {
	statuses := []model.JobStatus{}
	for _, value := range values {
		for _, s := range strings.Split(value, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if !funk.ContainsString(knownStatuses, s) {
				return nil, NewErrInvalidStatus("unknown job status %q", s)
			}
			if !funk.Contains(statuses, model.JobStatus(s)) {
				statuses = append(statuses, model.JobStatus(s))
			}
		}
	}
	return statuses, nil
}
