package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		ObserveAPI("list", "ok", 20*time.Millisecond)
		IncStateLoad("hit")
	})

	before := testutil.ToFloat64(staleFetches)
	IncStaleFetch()
	assert.Equal(t, before+1, testutil.ToFloat64(staleFetches))

	beforeErr := testutil.ToFloat64(notices.WithLabelValues("error"))
	IncNotice("error")
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(notices.WithLabelValues("error")))
}
