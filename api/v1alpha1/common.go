package v1alpha1

// StringToJobStatus maps a query value to a status. ok is false for unknown
// values.
func StringToJobStatus(s string) (JobStatus, bool) {
	switch s {
	case string(JobStatusOpen):
		return JobStatusOpen, true
	case string(JobStatusAssigned):
		return JobStatusAssigned, true
	case string(JobStatusRequested):
		return JobStatusRequested, true
	case string(JobStatusInProgress):
		return JobStatusInProgress, true
	case string(JobStatusDone):
		return JobStatusDone, true
	case string(JobStatusFailed):
		return JobStatusFailed, true
	default:
		return "", false
	}
}
