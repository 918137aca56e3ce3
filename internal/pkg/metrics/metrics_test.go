package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-source", "error"))
	ObserveUpstream("test-source", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(UpstreamRequests.WithLabelValues("test-source", "error"))
	assert.Equal(t, before+1, after)
}

func TestCacheResult(t *testing.T) {
	before := testutil.ToFloat64(CacheLookups.WithLabelValues("test-cache", "hit"))
	CacheResult("test-cache", true)
	assert.Equal(t, before+1, testutil.ToFloat64(CacheLookups.WithLabelValues("test-cache", "hit")))
}
