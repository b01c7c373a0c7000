package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Emptied groups have no admin and a creator can delete their account; the
// report unwinds must preserve those groups instead of dropping them.
func TestGroupReportPipelineKeepsAdminlessGroups(t *testing.T) {
	var unwinds int
	for _, stage := range groupReportPipeline() {
		for _, e := range stage {
			if e.Key != "$unwind" {
				continue
			}
			unwinds++
			opts, ok := e.Value.(bson.M)
			require.True(t, ok, "$unwind must carry options, not a bare path")
			assert.Equal(t, true, opts["preserveNullAndEmptyArrays"])
		}
	}
	assert.Equal(t, 2, unwinds, "creator and admin lookups are both unwound")
}
