package runtime

import (
	"log/slog"
	"testing"

	"workflow-lab/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistry_SubscribeAndUnsubscribe(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry(slog.Default())
	req.Empty(registry.Sinks())

	sink := mocks.NewMockEventSink(ctrl)
	registry.Subscribe("dashboard", sink)
	req.Len(registry.Sinks(), 1)

	// Re-subscribing under the same id replaces, never duplicates.
	registry.Subscribe("dashboard", sink)
	req.Len(registry.Sinks(), 1)

	registry.Subscribe("exporter", sink)
	req.Len(registry.Sinks(), 2)

	registry.Unsubscribe("dashboard")
	req.Len(registry.Sinks(), 1)

	registry.Unsubscribe("unknown")
	req.Len(registry.Sinks(), 1)
}
