package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReportStatus(t *testing.T) {
	for _, s := range []string{ReportStatusPending, ReportStatusReviewed, ReportStatusIgnored, ReportStatusActionTaken} {
		assert.True(t, ValidReportStatus(s), s)
	}
	assert.False(t, ValidReportStatus("resolved"))
	assert.False(t, ValidReportStatus(""))
}

func TestValidReportCategory(t *testing.T) {
	for _, c := range ReportCategories {
		assert.True(t, ValidReportCategory(c), c)
	}
	assert.False(t, ValidReportCategory("other stuff"))
}

func TestValidFeedFeeling(t *testing.T) {
	for _, f := range FeedFeelings {
		assert.True(t, ValidFeedFeeling(f), f)
	}
	assert.False(t, ValidFeedFeeling("ecstatic"))
}
