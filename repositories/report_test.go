package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"workflow-lab/domain"
	apperrors "workflow-lab/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T, pageSize int) *ReportRepository {
	t.Helper()
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	t.Cleanup(func() { _ = blugeWriter.Close() })

	return NewReportRepository(db, blugeWriter, slog.Default(), pageSize)
}

func sampleReport(workflowType string, at time.Time) domain.WorkflowReport {
	session := uuid.New()
	return domain.WorkflowReport{
		ID:           uuid.NewSHA1(session, []byte("workflow-report")),
		Session:      session,
		Description:  fmt.Sprintf("%s workflow with 12 interactions", workflowType),
		WorkflowType: workflowType,
		Complexity:   domain.Moderate,
		DetectedTasks: []domain.TaskTally{
			{Name: workflowType, Frequency: 12, ConfidenceSum: 9.6},
		},
		Automation: domain.Assessment{
			OverallScore: 73,
			Level:        domain.High,
			Approach:     domain.ApproachHigh,
		},
		Steps:     []string{"Open application", "Do the work", "Save"},
		Summary:   domain.SessionSummary{Duration: 3 * time.Minute, Interactions: 12},
		CreatedAt: at,
	}
}

func TestReportRepository_StoreAndGetByID(t *testing.T) {
	req := require.New(t)
	repo := newRepository(t, 50)

	original := sampleReport("excel_operations", time.Now().UTC().Truncate(time.Millisecond))
	req.NoError(repo.Store(original))

	fetched, err := repo.GetByID(original.ID)
	req.NoError(err)

	req.Equal(original.ID, fetched.ID)
	req.Equal(original.Session, fetched.Session)
	req.Equal(original.WorkflowType, fetched.WorkflowType)
	req.Equal(original.DetectedTasks, fetched.DetectedTasks)
	req.Equal(original.Automation, fetched.Automation)
	req.True(original.CreatedAt.Equal(fetched.CreatedAt))
}

func TestReportRepository_GetByID_NotFound(t *testing.T) {
	repo := newRepository(t, 50)
	_, err := repo.GetByID(uuid.New())
	require.ErrorIs(t, err, apperrors.ErrReportNotFound)
}

func TestReportRepository_StoreIsIdempotent(t *testing.T) {
	req := require.New(t)
	repo := newRepository(t, 50)

	report := sampleReport("data_entry", time.Now().UTC())
	req.NoError(repo.Store(report))
	req.NoError(repo.Store(report))

	reports, cursor, err := repo.GetReports(nil)
	req.NoError(err)
	req.Nil(cursor)
	req.Len(reports, 1)
}

func TestReportRepository_GetReportsPagination(t *testing.T) {
	req := require.New(t)
	repo := newRepository(t, 2)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var stored []domain.WorkflowReport
	for i := 0; i < 5; i++ {
		r := sampleReport("excel_operations", base.Add(time.Duration(i)*time.Minute))
		req.NoError(repo.Store(r))
		stored = append(stored, r)
	}

	// First page: the two newest reports.
	page1, cursor, err := repo.GetReports(nil)
	req.NoError(err)
	req.NotNil(cursor)
	req.Len(page1, 2)
	req.Equal(stored[4].ID, page1[0].ID)
	req.Equal(stored[3].ID, page1[1].ID)

	page2, cursor, err := repo.GetReports(cursor)
	req.NoError(err)
	req.NotNil(cursor)
	req.Len(page2, 2)
	req.Equal(stored[2].ID, page2[0].ID)
	req.Equal(stored[1].ID, page2[1].ID)

	page3, cursor, err := repo.GetReports(cursor)
	req.NoError(err)
	req.Nil(cursor)
	req.Len(page3, 1)
	req.Equal(stored[0].ID, page3[0].ID)
}

func TestReportRepository_Search(t *testing.T) {
	req := require.New(t)
	repo := newRepository(t, 50)
	ctx := context.Background()

	excel := sampleReport("excel_operations", time.Now().UTC())
	excel.Description = "Excel spreadsheet workflow with 30 interactions"
	entry := sampleReport("data_entry", time.Now().UTC())
	entry.Description = "Data entry workflow with 8 form interactions"

	req.NoError(repo.Store(excel))
	req.NoError(repo.Store(entry))

	hits, total, err := repo.Search(ctx, "spreadsheet", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(hits, 1)
	req.Equal(excel.ID, hits[0].ID)

	// Task names are indexed too.
	hits, _, err = repo.Search(ctx, "data_entry", 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(entry.ID, hits[0].ID)

	_, total, err = repo.Search(ctx, "nonexistentterm", 10)
	req.NoError(err)
	req.Zero(total)
}
