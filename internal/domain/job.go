package domain

// JobDetail is the subset of a classification job's description that travels
// with enriched status events. Fetched fresh per event and never cached: the
// job's tags and statistics may change between the log line and processing.
type JobDetail struct {
	JobArn          string            `json:"jobArn"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	S3JobDefinition S3JobDefinition   `json:"s3JobDefinition"`
	Statistics      JobStatistics     `json:"statistics"`
	Tags            map[string]string `json:"tags,omitempty"`
}

// JobStatistics mirrors the describe output's statistics block.
type JobStatistics struct {
	ApproximateNumberOfObjectsToProcess float64 `json:"approximateNumberOfObjectsToProcess"`
	NumberOfRuns                        float64 `json:"numberOfRuns"`
}

// S3JobDefinition names the buckets a classification job scans.
type S3JobDefinition struct {
	BucketDefinitions []BucketDefinition `json:"bucketDefinitions"`
}

// BucketDefinition pairs an account with the buckets scanned in it.
type BucketDefinition struct {
	AccountID string   `json:"accountId"`
	Buckets   []string `json:"buckets"`
}

// Job types accepted by the create-job pass-through.
const (
	JobTypeOneTime   = "ONE_TIME"
	JobTypeScheduled = "SCHEDULED"
)

// Schedule frequencies accepted for scheduled jobs.
const (
	ScheduleDaily   = "DAILY"
	ScheduleWeekly  = "WEEKLY"
	ScheduleMonthly = "MONTHLY"
)

// CreateJobRequest is the validated pass-through input for submitting a
// classification job.
type CreateJobRequest struct {
	Name                          string            `json:"name"`
	Description                   string            `json:"description,omitempty"`
	JobType                       string            `json:"jobType"`
	InitialRun                    bool              `json:"initialRun,omitempty"`
	SamplingPercentage            int32             `json:"samplingPercentage,omitempty"`
	ScheduleFrequency             string            `json:"scheduleFrequency,omitempty"`
	ManagedDataIdentifierSelector string            `json:"managedDataIdentifierSelector,omitempty"`
	CustomDataIdentifierIDs       []string          `json:"customDataIdentifierIds,omitempty"`
	S3JobDefinition               S3JobDefinition   `json:"s3JobDefinition"`
	Tags                          map[string]string `json:"tags,omitempty"`
}

// Validate checks the structural requirements of a job submission. The
// destination tag's format and existence are checked separately, where the
// event bus client is available.
func (r *CreateJobRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	switch r.JobType {
	case JobTypeOneTime:
		if r.ScheduleFrequency != "" {
			return &ValidationError{Field: "scheduleFrequency", Message: "must be empty for ONE_TIME jobs"}
		}
	case JobTypeScheduled:
		switch r.ScheduleFrequency {
		case ScheduleDaily, ScheduleWeekly, ScheduleMonthly:
		default:
			return &ValidationError{Field: "scheduleFrequency", Message: "must be DAILY, WEEKLY or MONTHLY for SCHEDULED jobs"}
		}
	default:
		return &ValidationError{Field: "jobType", Message: "must be ONE_TIME or SCHEDULED"}
	}
	if len(r.S3JobDefinition.BucketDefinitions) == 0 {
		return &ValidationError{Field: "s3JobDefinition.bucketDefinitions", Message: "must name at least one bucket definition"}
	}
	for _, def := range r.S3JobDefinition.BucketDefinitions {
		if def.AccountID == "" || len(def.Buckets) == 0 {
			return &ValidationError{Field: "s3JobDefinition.bucketDefinitions", Message: "each definition needs an accountId and at least one bucket"}
		}
	}
	if r.SamplingPercentage < 0 || r.SamplingPercentage > 100 {
		return &ValidationError{Field: "samplingPercentage", Message: "must be between 0 and 100"}
	}
	return nil
}

// CreateJobResult is the identifier pair returned for a submitted job.
type CreateJobResult struct {
	JobID  string `json:"jobId"`
	JobArn string `json:"jobArn"`
}
