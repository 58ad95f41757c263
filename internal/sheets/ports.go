package sheets

import (
	"context"

	"fundtrackr/internal/core"
)

// ExportSink is the outbound port for cloud export destinations. The
// exporter hands a snapshot over and the sink appends it as rows; the
// caller keeps the formatted artifact, nothing is stashed in ambient
// state.
type ExportSink interface {
	AppendSnapshot(ctx context.Context, txs []core.Transaction) (rowRef string, err error)
}
