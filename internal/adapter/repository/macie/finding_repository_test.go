package macie

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/aws/aws-sdk-go-v2/service/macie2/types"

	"github.com/user/macie-relay/internal/domain"
)

// stubFindingsClient is a stub implementation of the FindingsAPI interface.
type stubFindingsClient struct {
	listOut    *macie2.ListFindingsOutput
	listErr    error
	lastListIn *macie2.ListFindingsInput
	getOut     *macie2.GetFindingsOutput
	getErr     error
	lastGetIn  *macie2.GetFindingsInput
}

func (s *stubFindingsClient) ListFindings(ctx context.Context, in *macie2.ListFindingsInput, opts ...func(*macie2.Options)) (*macie2.ListFindingsOutput, error) {
	s.lastListIn = in
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listOut, nil
}

func (s *stubFindingsClient) GetFindings(ctx context.Context, in *macie2.GetFindingsInput, opts ...func(*macie2.Options)) (*macie2.GetFindingsOutput, error) {
	s.lastGetIn = in
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getOut, nil
}

func newFindingRepository(client *stubFindingsClient) *FindingRepository {
	return NewFindingRepository(client, 100, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFindingRepository_ListFindingIDs(t *testing.T) {
	t.Run("Request Shape", func(t *testing.T) {
		client := &stubFindingsClient{
			listOut: &macie2.ListFindingsOutput{
				FindingIds: []string{"f-1", "f-2"},
				NextToken:  aws.String("cursor-1"),
			},
		}
		repo := newFindingRepository(client)

		ids, cursor, err := repo.ListFindingIDs(context.Background(), "job-1", 25, "cursor-0")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ids) != 2 || cursor != "cursor-1" {
			t.Errorf("unexpected page: ids=%v cursor=%q", ids, cursor)
		}

		in := client.lastListIn
		if aws.ToInt32(in.MaxResults) != 25 {
			t.Errorf("expected maxResults 25 forwarded, got %d", aws.ToInt32(in.MaxResults))
		}
		if aws.ToString(in.NextToken) != "cursor-0" {
			t.Errorf("expected cursor forwarded, got %q", aws.ToString(in.NextToken))
		}
		criterion, ok := in.FindingCriteria.Criterion[jobIDCriterionKey]
		if !ok || len(criterion.Eq) != 1 || criterion.Eq[0] != "job-1" {
			t.Errorf("expected job-id equality criterion, got %+v", in.FindingCriteria)
		}
	})

	t.Run("First Page Omits Cursor", func(t *testing.T) {
		client := &stubFindingsClient{listOut: &macie2.ListFindingsOutput{}}
		repo := newFindingRepository(client)

		_, cursor, err := repo.ListFindingIDs(context.Background(), "job-1", 50, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if client.lastListIn.NextToken != nil {
			t.Error("expected no cursor on the first page request")
		}
		if cursor != "" {
			t.Errorf("expected empty cursor when upstream returns none, got %q", cursor)
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		client := &stubFindingsClient{listErr: errors.New("throttled")}
		repo := newFindingRepository(client)

		_, _, err := repo.ListFindingIDs(context.Background(), "job-1", 50, "")
		var svcErr *domain.ExternalServiceError
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected ExternalServiceError, got %v", err)
		}
	})
}

func TestFindingRepository_GetFindings(t *testing.T) {
	t.Run("Batched Fetch", func(t *testing.T) {
		client := &stubFindingsClient{
			getOut: &macie2.GetFindingsOutput{
				Findings: []types.Finding{{Id: aws.String("f-1")}, {Id: aws.String("f-2")}},
			},
		}
		repo := newFindingRepository(client)

		findings, err := repo.GetFindings(context.Background(), []string{"f-1", "f-2"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(findings) != 2 || findings[0].ID != "f-1" {
			t.Errorf("unexpected findings: %+v", findings)
		}
		if len(client.lastGetIn.FindingIds) != 2 {
			t.Errorf("expected both ids in one call, got %v", client.lastGetIn.FindingIds)
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		client := &stubFindingsClient{getErr: errors.New("timeout")}
		repo := newFindingRepository(client)

		_, err := repo.GetFindings(context.Background(), []string{"f-1"})
		var svcErr *domain.ExternalServiceError
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected ExternalServiceError, got %v", err)
		}
	})
}
