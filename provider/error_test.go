package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	runID := uuid.New()
	turnID := uuid.New()
	err := error(Error{
		RunID:     runID,
		TurnID:    turnID,
		Err:       context.DeadlineExceeded,
		Timestamp: strfmt.DateTime(time.Now()),
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), runID.String())
	assert.Contains(t, err.Error(), turnID.String())

	var perr Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, runID, perr.RunID)
}
