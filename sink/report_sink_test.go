package sink

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"workflow-lab/domain"
	"workflow-lab/domain/event"
	"workflow-lab/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportSink_PersistsSynthesizedReports(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIReportRepository(ctrl)
	s := NewReportSink(repo, slog.Default())

	session := uuid.New()
	report := domain.WorkflowReport{
		ID:           uuid.NewSHA1(session, []byte("workflow-report")),
		Session:      session,
		WorkflowType: "excel_operations",
	}

	repo.EXPECT().Store(report).Return(nil).Times(1)

	err := s.Consume(context.Background(), event.ReportSynthesized{
		Session: session,
		Report:  report,
		At:      time.Now(),
	})
	req.NoError(err)
}

func TestReportSink_PropagatesStorageErrors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIReportRepository(ctrl)
	s := NewReportSink(repo, slog.Default())

	storeErr := errors.New("disk full")
	repo.EXPECT().Store(gomock.Any()).Return(storeErr).Times(1)

	err := s.Consume(context.Background(), event.ReportSynthesized{Session: uuid.New()})
	req.ErrorIs(err, storeErr)
}

func TestReportSink_IgnoresOtherEvents(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Store expectation: any call would fail the test.
	repo := mocks.NewMockIReportRepository(ctrl)
	s := NewReportSink(repo, slog.Default())

	err := s.Consume(context.Background(), event.AnalysisDegraded{
		Session: uuid.New(),
		Reason:  "empty evidence",
	})
	req.NoError(err)
}
