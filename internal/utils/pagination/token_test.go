package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianlend/ledger/internal/utils/pagination"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	effectiveDate := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, time.August, 15, 9, 30, 0, 123456789, time.UTC)

	token := pagination.EncodeToken(effectiveDate, createdAt)

	gotEffective, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotEffective.Equal(effectiveDate))
	assert.True(t, gotCreated.Equal(createdAt))
}

func TestDecodeToken_NotBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2026-08-15T00:00:00Z"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|tomorrow"))
	_, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
