package get_dashboard

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	req, err := ToServiceRequest(url.Values{}, now)
	require.NoError(t, err)
	assert.Equal(t, 2026, req.Year)
	assert.Equal(t, 10, req.Month)

	req, err = ToServiceRequest(url.Values{"year": {"2024"}, "month": {"0"}}, now)
	require.NoError(t, err)
	assert.Equal(t, 2024, req.Year)
	assert.Equal(t, 0, req.Month)

	_, err = ToServiceRequest(url.Values{"month": {"feb"}}, now)
	assert.Error(t, err)
}
