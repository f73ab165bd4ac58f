package slogx

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAttrs(t *testing.T) {
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Equal(t, "error", Error(errors.New("boom")).Key)
	assert.Equal(t, KeyLoggerName, LoggerName("agent").Key)
	assert.Equal(t, "FDA_get_risk_info_by_drug_name", Tool("FDA_get_risk_info_by_drug_name").Value.String())
	assert.Equal(t, KeyFingerprint, Fingerprint("abc").Key)
	assert.Equal(t, int64(3), Round(3).Value.Int64())

	id := uuid.New()
	assert.Equal(t, id.String(), RunID(id).Value.String())
}
