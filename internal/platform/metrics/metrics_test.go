package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveListingCreate(t *testing.T) {
	before := testutil.ToFloat64(ListingCreate.WithLabelValues("committed"))

	ObserveListingCreate("committed", time.Now().Add(-10*time.Millisecond))

	assert.Equal(t, before+1, testutil.ToFloat64(ListingCreate.WithLabelValues("committed")))
}
