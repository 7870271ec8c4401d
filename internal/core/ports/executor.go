package ports

import (
	"context"

	"go.trai.ch/press/internal/core/domain"
)

// Executor runs external tools.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd to completion. Output is forwarded to the logger.
	Execute(ctx context.Context, cmd domain.Command) error
}
