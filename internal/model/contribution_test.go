package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyContribution(t *testing.T) {
	tests := []struct {
		name string
		c    Contribution
		want PaymentStatus
	}{
		{"complete pool", Contribution{IsComplete: true}, StatusPaid},
		{"i paid", Contribution{IPaid: true}, StatusPaid},
		{"pending approval", Contribution{IsPendingApproval: true}, StatusPendingApproval},
		{"nothing yet", Contribution{}, StatusPendingPayment},
		{
			"complete wins over pending approval",
			Contribution{IsComplete: true, IsPendingApproval: true},
			StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyContribution(tt.c))
		})
	}
}

func TestContributionProgress(t *testing.T) {
	c := Contribution{PaidParticipants: 3, TotalParticipants: 5}
	assert.Equal(t, "3/5", c.Progress())
}
