package domain

import "strings"

// Finding is the normalized representation of a classification finding.
// Every optional upstream field is defaulted to an explicit empty value, so
// consumers never branch on missing-vs-empty.
type Finding struct {
	ID                    string                `json:"id"`
	AccountID             string                `json:"accountId"`
	Archived              bool                  `json:"archived"`
	Category              string                `json:"category"`
	ClassificationDetails ClassificationDetails `json:"classificationDetails"`
	Count                 int64                 `json:"count"`
	CreatedAt             string                `json:"createdAt"`
	Description           string                `json:"description"`
	Partition             string                `json:"partition"`
	Region                string                `json:"region"`
	ResourcesAffected     ResourcesAffected     `json:"resourcesAffected"`
	Sample                bool                  `json:"sample"`
	SchemaVersion         string                `json:"schemaVersion"`
	Severity              Severity              `json:"severity"`
	Title                 string                `json:"title"`
	Type                  string                `json:"type"`
	UpdatedAt             string                `json:"updatedAt"`
}

// ClassificationDetails ties a finding back to the job that produced it.
type ClassificationDetails struct {
	JobArn string               `json:"jobArn"`
	JobID  string               `json:"jobId"`
	Result ClassificationResult `json:"result"`
}

// ClassificationResult summarizes what the scan detected.
type ClassificationResult struct {
	Status        ResultStatus        `json:"status"`
	SensitiveData []SensitiveDataItem `json:"sensitiveData"`
}

// ResultStatus is the scan's status code and optional reason.
type ResultStatus struct {
	Code   string `json:"code"`
	Reason string `json:"reason,omitempty"`
}

// SensitiveDataItem breaks one sensitive-data category into typed detections.
type SensitiveDataItem struct {
	Category   string      `json:"category"`
	Detections []Detection `json:"detections"`
	TotalCount int64       `json:"totalCount"`
}

// Detection is a per-type occurrence count within a category.
type Detection struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// ResourcesAffected describes the bucket or object the finding points at.
type ResourcesAffected struct {
	S3Bucket S3BucketInfo `json:"s3Bucket"`
	S3Object S3ObjectInfo `json:"s3Object"`
}

// S3BucketInfo is the affected bucket descriptor.
type S3BucketInfo struct {
	Arn   string      `json:"arn"`
	Name  string      `json:"name"`
	Owner BucketOwner `json:"owner"`
	Tags  []KeyValue  `json:"tags"`
}

// BucketOwner identifies the bucket's owning canonical user.
type BucketOwner struct {
	DisplayName string `json:"displayName"`
	ID          string `json:"id"`
}

// S3ObjectInfo is the affected object descriptor.
type S3ObjectInfo struct {
	BucketArn    string     `json:"bucketArn"`
	ETag         string     `json:"eTag"`
	Key          string     `json:"key"`
	LastModified string     `json:"lastModified"`
	Size         int64      `json:"size"`
	StorageClass string     `json:"storageClass"`
	Tags         []KeyValue `json:"tags"`
}

// KeyValue is a resource tag pair.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Severity is the finding's severity description and numeric score.
type Severity struct {
	Description string `json:"description"`
	Score       int64  `json:"score"`
}

// MaxFindingsPageSize is the hard upper bound the upstream listing accepts.
const MaxFindingsPageSize = 50

// FindingsRequest asks for one page of findings for a job. NextToken is an
// opaque cursor owned by the upstream listing; it is passed through untouched.
type FindingsRequest struct {
	JobID      string
	MaxResults int
	NextToken  string
}

// Validate rejects malformed requests before any external call. A zero
// MaxResults means "use the default page size".
func (r FindingsRequest) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return &ValidationError{Field: "jobId", Message: "must not be empty"}
	}
	if r.MaxResults < 0 || r.MaxResults > MaxFindingsPageSize {
		return &ValidationError{Field: "maxResults", Message: "must be between 1 and 50"}
	}
	return nil
}

// FindingsPage is one page of normalized findings plus the continuation
// cursor from the listing phase, unchanged.
type FindingsPage struct {
	Findings   []Finding `json:"findings"`
	NextToken  string    `json:"nextToken,omitempty"`
	TotalCount int       `json:"totalCount"`
}
