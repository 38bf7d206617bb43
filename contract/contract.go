//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"workflow-lab/domain"
	"workflow-lab/domain/event"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker does not protect itself; the supervisor handles panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to derive a log-friendly name for a worker,
// so the Worker interface stays minimal.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks presentation-layer subscribers that want finished
// reports pushed to them as they are produced.
type IRegistry interface {
	Sinks() []EventSink
	Subscribe(subscriberID string, sink EventSink)
	Unsubscribe(subscriberID string)
}

type IReportRepository interface {
	Store(report domain.WorkflowReport) error
	GetByID(id uuid.UUID) (domain.WorkflowReport, error)
	GetReports(cursor *string) ([]domain.WorkflowReport, *string, error)
	Search(ctx context.Context, terms string, limit int) ([]domain.WorkflowReport, uint64, error)
}

type IOrchestrator interface {
	Submit(e event.SessionCompleted)
	RegisterSinks(sink ...EventSink)
	Subscribe(subscriberID string, sink EventSink)
	Unsubscribe(subscriberID string)
	Start(ctx context.Context) error
	Stop()
}
