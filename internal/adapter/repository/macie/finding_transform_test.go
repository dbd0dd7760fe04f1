package macie

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2/types"
)

func TestNormalizeFinding(t *testing.T) {
	t.Run("Sparse Finding Is Fully Defaulted", func(t *testing.T) {
		got := normalizeFinding(types.Finding{Id: aws.String("f-1")})

		if got.ID != "f-1" {
			t.Errorf("expected id f-1, got %q", got.ID)
		}
		if got.CreatedAt != "" || got.UpdatedAt != "" {
			t.Errorf("expected empty timestamps, got %q / %q", got.CreatedAt, got.UpdatedAt)
		}
		if got.ClassificationDetails.Result.SensitiveData == nil {
			t.Error("expected empty non-nil sensitiveData slice")
		}
		if got.ResourcesAffected.S3Bucket.Tags == nil || got.ResourcesAffected.S3Object.Tags == nil {
			t.Error("expected empty non-nil tag slices")
		}
		if got.Severity.Score != 0 || got.Severity.Description != "" {
			t.Errorf("expected zero severity, got %+v", got.Severity)
		}
	})

	t.Run("Populated Finding", func(t *testing.T) {
		created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		in := types.Finding{
			Id:            aws.String("f-2"),
			AccountId:     aws.String("123456789012"),
			Archived:      aws.Bool(true),
			Category:      types.FindingCategoryClassification,
			Count:         aws.Int64(3),
			CreatedAt:     &created,
			Description:   aws.String("sensitive data found"),
			Partition:     aws.String("aws"),
			Region:        aws.String("us-east-1"),
			SchemaVersion: aws.String("1.0"),
			Title:         aws.String("credentials in object"),
			Type:          types.FindingTypeSensitiveDataS3ObjectCredentials,
			ClassificationDetails: &types.ClassificationDetails{
				JobArn: aws.String("arn:aws:macie2:us-east-1:123456789012:classification-job/job-1"),
				JobId:  aws.String("job-1"),
				Result: &types.ClassificationResult{
					Status: &types.ClassificationResultStatus{
						Code: aws.String("COMPLETE"),
					},
					SensitiveData: []types.SensitiveDataItem{
						{
							Category:   types.SensitiveDataItemCategoryCredentials,
							TotalCount: aws.Int64(2),
							Detections: []types.DefaultDetection{
								{Type: aws.String("AWS_CREDENTIALS"), Count: aws.Int64(2)},
							},
						},
					},
				},
			},
			ResourcesAffected: &types.ResourcesAffected{
				S3Bucket: &types.S3Bucket{
					Arn:  aws.String("arn:aws:s3:::data-bucket"),
					Name: aws.String("data-bucket"),
					Owner: &types.S3BucketOwner{
						DisplayName: aws.String("data-team"),
						Id:          aws.String("owner-1"),
					},
					Tags: []types.KeyValuePair{{Key: aws.String("env"), Value: aws.String("prod")}},
				},
				S3Object: &types.S3Object{
					BucketArn:    aws.String("arn:aws:s3:::data-bucket"),
					Key:          aws.String("exports/creds.csv"),
					LastModified: &created,
					Size:         aws.Int64(1024),
					StorageClass: types.StorageClassStandard,
				},
			},
			Severity: &types.Severity{
				Description: types.SeverityDescriptionHigh,
				Score:       aws.Int64(3),
			},
		}

		got := normalizeFinding(in)

		if got.AccountID != "123456789012" || !got.Archived || got.Count != 3 {
			t.Errorf("core fields not mapped: %+v", got)
		}
		if got.CreatedAt != "2024-01-15T10:00:00Z" {
			t.Errorf("expected RFC3339 createdAt, got %q", got.CreatedAt)
		}
		if got.ClassificationDetails.JobID != "job-1" {
			t.Errorf("expected jobId mapped, got %q", got.ClassificationDetails.JobID)
		}
		if got.ClassificationDetails.Result.Status.Code != "COMPLETE" {
			t.Errorf("expected status code mapped, got %+v", got.ClassificationDetails.Result.Status)
		}
		sd := got.ClassificationDetails.Result.SensitiveData
		if len(sd) != 1 || sd[0].TotalCount != 2 || len(sd[0].Detections) != 1 {
			t.Fatalf("sensitive data not mapped: %+v", sd)
		}
		if sd[0].Detections[0].Type != "AWS_CREDENTIALS" {
			t.Errorf("expected detection type mapped, got %+v", sd[0].Detections[0])
		}
		bucket := got.ResourcesAffected.S3Bucket
		if bucket.Name != "data-bucket" || bucket.Owner.ID != "owner-1" || len(bucket.Tags) != 1 {
			t.Errorf("bucket not mapped: %+v", bucket)
		}
		object := got.ResourcesAffected.S3Object
		if object.Key != "exports/creds.csv" || object.Size != 1024 || object.StorageClass != "STANDARD" {
			t.Errorf("object not mapped: %+v", object)
		}
		if object.Tags == nil || len(object.Tags) != 0 {
			t.Errorf("expected empty non-nil object tags, got %#v", object.Tags)
		}
		if got.Severity.Description != "High" || got.Severity.Score != 3 {
			t.Errorf("severity not mapped: %+v", got.Severity)
		}
	})
}
