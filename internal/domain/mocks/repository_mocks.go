package mocks

import (
	"context"
	"sync"

	"github.com/user/macie-relay/internal/domain"
)

// MockJobRepository is a mock implementation of domain.JobRepository for testing.
type MockJobRepository struct {
	mu              sync.Mutex
	DescribeResults map[string]domain.JobDetail
	DescribeErr     error
	DescribedJobIDs []string
	CreateResult    domain.CreateJobResult
	CreateErr       error
	CreateCalls     []domain.CreateJobRequest
	ClientTokens    []string
}

func (m *MockJobRepository) DescribeJob(ctx context.Context, jobID string) (domain.JobDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescribedJobIDs = append(m.DescribedJobIDs, jobID)
	if m.DescribeErr != nil {
		return domain.JobDetail{}, m.DescribeErr
	}
	return m.DescribeResults[jobID], nil
}

func (m *MockJobRepository) CreateJob(ctx context.Context, req domain.CreateJobRequest, clientToken string) (domain.CreateJobResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, req)
	m.ClientTokens = append(m.ClientTokens, clientToken)
	if m.CreateErr != nil {
		return domain.CreateJobResult{}, m.CreateErr
	}
	return m.CreateResult, nil
}

// MockEventBusRepository is a mock implementation of domain.EventBusRepository for testing.
type MockEventBusRepository struct {
	mu          sync.Mutex
	ExistsErr   error
	ExistsCalls []string
	PublishErr  error
	Published   []domain.PublishEntry
}

func (m *MockEventBusRepository) Exists(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExistsCalls = append(m.ExistsCalls, name)
	if m.ExistsErr != nil {
		return "", m.ExistsErr
	}
	return name, nil
}

func (m *MockEventBusRepository) Publish(ctx context.Context, entry domain.PublishEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.Published = append(m.Published, entry)
	return nil
}

// ListCall captures the arguments of one ListFindingIDs invocation.
type ListCall struct {
	JobID      string
	MaxResults int32
	NextToken  string
}

// MockFindingRepository is a mock implementation of domain.FindingRepository for testing.
type MockFindingRepository struct {
	mu             sync.Mutex
	ListIDs        []string
	ListCursor     string
	ListErr        error
	ListCalls      []ListCall
	FindingsResult []domain.Finding
	GetErr         error
	GetCalls       [][]string
}

func (m *MockFindingRepository) ListFindingIDs(ctx context.Context, jobID string, maxResults int32, nextToken string) ([]string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, ListCall{JobID: jobID, MaxResults: maxResults, NextToken: nextToken})
	if m.ListErr != nil {
		return nil, "", m.ListErr
	}
	return m.ListIDs, m.ListCursor, nil
}

func (m *MockFindingRepository) GetFindings(ctx context.Context, ids []string) ([]domain.Finding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, ids)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.FindingsResult, nil
}
