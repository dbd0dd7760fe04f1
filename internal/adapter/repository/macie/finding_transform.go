package macie

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2/types"

	"github.com/user/macie-relay/internal/domain"
)

// normalizeFinding maps an SDK finding onto the stable domain shape. Every
// optional nested structure comes out as an explicit empty value so consumers
// never branch on missing-vs-empty.
func normalizeFinding(f types.Finding) domain.Finding {
	out := domain.Finding{
		ID:            aws.ToString(f.Id),
		AccountID:     aws.ToString(f.AccountId),
		Archived:      aws.ToBool(f.Archived),
		Category:      string(f.Category),
		Count:         aws.ToInt64(f.Count),
		CreatedAt:     formatTime(f.CreatedAt),
		Description:   aws.ToString(f.Description),
		Partition:     aws.ToString(f.Partition),
		Region:        aws.ToString(f.Region),
		Sample:        aws.ToBool(f.Sample),
		SchemaVersion: aws.ToString(f.SchemaVersion),
		Title:         aws.ToString(f.Title),
		Type:          string(f.Type),
		UpdatedAt:     formatTime(f.UpdatedAt),
	}
	out.ClassificationDetails = normalizeClassificationDetails(f.ClassificationDetails)
	out.ResourcesAffected = normalizeResourcesAffected(f.ResourcesAffected)
	if f.Severity != nil {
		out.Severity = domain.Severity{
			Description: string(f.Severity.Description),
			Score:       aws.ToInt64(f.Severity.Score),
		}
	}
	return out
}

func normalizeClassificationDetails(d *types.ClassificationDetails) domain.ClassificationDetails {
	out := domain.ClassificationDetails{
		Result: domain.ClassificationResult{SensitiveData: []domain.SensitiveDataItem{}},
	}
	if d == nil {
		return out
	}
	out.JobArn = aws.ToString(d.JobArn)
	out.JobID = aws.ToString(d.JobId)
	if d.Result == nil {
		return out
	}
	if d.Result.Status != nil {
		out.Result.Status = domain.ResultStatus{
			Code:   aws.ToString(d.Result.Status.Code),
			Reason: aws.ToString(d.Result.Status.Reason),
		}
	}
	for _, item := range d.Result.SensitiveData {
		detections := make([]domain.Detection, 0, len(item.Detections))
		for _, det := range item.Detections {
			detections = append(detections, domain.Detection{
				Type:  aws.ToString(det.Type),
				Count: aws.ToInt64(det.Count),
			})
		}
		out.Result.SensitiveData = append(out.Result.SensitiveData, domain.SensitiveDataItem{
			Category:   string(item.Category),
			Detections: detections,
			TotalCount: aws.ToInt64(item.TotalCount),
		})
	}
	return out
}

func normalizeResourcesAffected(r *types.ResourcesAffected) domain.ResourcesAffected {
	out := domain.ResourcesAffected{
		S3Bucket: domain.S3BucketInfo{Tags: []domain.KeyValue{}},
		S3Object: domain.S3ObjectInfo{Tags: []domain.KeyValue{}},
	}
	if r == nil {
		return out
	}
	if b := r.S3Bucket; b != nil {
		out.S3Bucket.Arn = aws.ToString(b.Arn)
		out.S3Bucket.Name = aws.ToString(b.Name)
		if b.Owner != nil {
			out.S3Bucket.Owner = domain.BucketOwner{
				DisplayName: aws.ToString(b.Owner.DisplayName),
				ID:          aws.ToString(b.Owner.Id),
			}
		}
		out.S3Bucket.Tags = normalizeTags(b.Tags)
	}
	if o := r.S3Object; o != nil {
		out.S3Object.BucketArn = aws.ToString(o.BucketArn)
		out.S3Object.ETag = aws.ToString(o.ETag)
		out.S3Object.Key = aws.ToString(o.Key)
		out.S3Object.LastModified = formatTime(o.LastModified)
		out.S3Object.Size = aws.ToInt64(o.Size)
		out.S3Object.StorageClass = string(o.StorageClass)
		out.S3Object.Tags = normalizeTags(o.Tags)
	}
	return out
}

func normalizeTags(pairs []types.KeyValuePair) []domain.KeyValue {
	tags := make([]domain.KeyValue, 0, len(pairs))
	for _, p := range pairs {
		tags = append(tags, domain.KeyValue{
			Key:   aws.ToString(p.Key),
			Value: aws.ToString(p.Value),
		})
	}
	return tags
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
