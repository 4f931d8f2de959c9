package services

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// internalError passes failures through unchanged and turns anything else
// into common.ErrorInternal after logging it.
func internalError(ctx context.Context, log logging.Logger, msg string, err error) error {
	if _, ok := failure.As(err); ok {
		return err
	}
	log.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}
