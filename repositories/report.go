// Package repositories persists workflow reports. BadgerDB is the source of
// truth (one key per report, newest-first iteration order); a Bluge index
// makes past reports searchable by their description and task names.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"workflow-lab/domain"
	apperrors "workflow-lab/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	reportPrefix = "report:"
	idxPrefix    = "idx:report:"
)

type ReportRepository struct {
	db       *badger.DB
	index    *bluge.Writer
	log      *slog.Logger
	pageSize int
}

func NewReportRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger, pageSize int) *ReportRepository {
	return &ReportRepository{db: db, index: index, log: log, pageSize: pageSize}
}

// primaryKey orders reports chronologically; the zero-padded timestamp keeps
// byte order aligned with time order so reverse iteration is newest-first.
func primaryKey(r domain.WorkflowReport) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", reportPrefix, r.CreatedAt.UnixNano(), r.ID))
}

func indexKey(id uuid.UUID) []byte {
	return []byte(idxPrefix + id.String())
}

// Store writes the report and its secondary index entry in one transaction,
// then updates the search index. The report is the atomic persisted unit;
// there is no partial-report write path.
func (r *ReportRepository) Store(report domain.WorkflowReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	key := primaryKey(report)
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(indexKey(report.ID), key)
	})
	if err != nil {
		return fmt.Errorf("storing report: %w", err)
	}

	if err := r.indexReport(report); err != nil {
		// The report is already durable; a stale search index is
		// acceptable and logged, not fatal.
		r.log.Warn("Failed to index report", "report", report.ID, "error", err)
	}
	return nil
}

func (r *ReportRepository) indexReport(report domain.WorkflowReport) error {
	taskNames := lo.Map(report.DetectedTasks, func(t domain.TaskTally, _ int) string {
		return t.Name
	})

	doc := bluge.NewDocument(report.ID.String()).
		AddField(bluge.NewTextField("description", report.Description).StoreValue()).
		AddField(bluge.NewKeywordField("workflow_type", report.WorkflowType).StoreValue()).
		AddField(bluge.NewTextField("tasks", strings.Join(taskNames, " "))).
		AddField(bluge.NewNumericField("score", float64(report.Automation.OverallScore)))

	return r.index.Update(doc.ID(), doc)
}

func (r *ReportRepository) GetByID(id uuid.UUID) (domain.WorkflowReport, error) {
	var report domain.WorkflowReport
	err := r.db.View(func(txn *badger.Txn) error {
		idxItem, err := txn.Get(indexKey(id))
		if err != nil {
			return err
		}
		key, err := idxItem.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &report)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.WorkflowReport{}, apperrors.ErrReportNotFound
	}
	if err != nil {
		return domain.WorkflowReport{}, fmt.Errorf("loading report %s: %w", id, err)
	}
	return report, nil
}

// GetReports pages through stored reports, newest first. The returned cursor
// is nil once the last page has been served.
func (r *ReportRepository) GetReports(cursor *string) ([]domain.WorkflowReport, *string, error) {
	var reports []domain.WorkflowReport
	var nextCursor *string

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reportPrefix)
		// In reverse mode Seek positions at the greatest key <= target.
		seek := append(append([]byte{}, prefix...), 0xFF)
		if cursor != nil {
			seek = []byte(*cursor)
		}

		var lastKey string
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if cursor != nil && key == *cursor {
				continue // the cursor itself was served on the previous page
			}
			if len(reports) == r.pageSize {
				nextCursor = lo.ToPtr(lastKey)
				return nil
			}
			var report domain.WorkflowReport
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &report)
			}); err != nil {
				return err
			}
			lastKey = key
			reports = append(reports, report)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing reports: %w", err)
	}
	return reports, nextCursor, nil
}

// Search runs a full-text match over report descriptions and task names and
// resolves the hits back to the stored reports.
func (r *ReportRepository) Search(ctx context.Context, terms string, limit int) ([]domain.WorkflowReport, uint64, error) {
	reader, err := r.index.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("opening index reader: %w", err)
	}
	defer reader.Close()

	query := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(terms).SetField("description")).
		AddShould(bluge.NewMatchQuery(terms).SetField("tasks"))

	req := bluge.NewTopNSearch(limit, query).WithStandardAggregations()
	dmi, err := reader.Search(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("searching reports: %w", err)
	}

	var reports []domain.WorkflowReport
	for next, err := dmi.Next(); next != nil; next, err = dmi.Next() {
		if err != nil {
			return nil, 0, err
		}
		var id string
		if err := next.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				id = string(value)
			}
			return true
		}); err != nil {
			return nil, 0, err
		}

		reportID, err := uuid.Parse(id)
		if err != nil {
			r.log.Warn("Skipping malformed index hit", "id", id)
			continue
		}
		report, err := r.GetByID(reportID)
		if err != nil {
			// Index entries may outlive their Badger records.
			r.log.Debug("Index hit without stored report", "id", id)
			continue
		}
		reports = append(reports, report)
	}

	return reports, dmi.Aggregations().Count(), nil
}
