package milestone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/celebration-service/internal/domain"
)

func TestMonthlyDistributionSumsToTotal(t *testing.T) {
	sets := [][]domain.Customer{
		nil,
		sampleCustomers(),
		{customer("x", 1, 0, domain.Tracking{}), customer("y", 31, 11, domain.Tracking{}), customer("z", 2, 0, domain.Tracking{})},
	}
	for _, customers := range sets {
		months := MonthlyDistribution(customers)
		require.Len(t, months, 12)
		total := 0
		for _, m := range months {
			total += m.Count
		}
		assert.Equal(t, len(customers), total)
	}
}

func TestMonthlyDistributionAlignment(t *testing.T) {
	months := MonthlyDistribution(sampleCustomers())
	assert.Equal(t, "March", months[2].Name)
	assert.Equal(t, "Mar", months[2].Short)
	assert.Equal(t, 2, months[2].Count)
	assert.Equal(t, "June", months[5].Name)
	assert.Equal(t, 1, months[5].Count)
	assert.Equal(t, 0, months[0].Count)
}

func TestDashboard(t *testing.T) {
	customers := sampleCustomers()
	stats := Dashboard(customers, 2, []Alert{{CustomerID: "a"}, {CustomerID: "a"}})
	assert.Equal(t, 3, stats.TotalCustomers)
	assert.Equal(t, 2, stats.ActiveStaff)
	assert.Equal(t, 2, stats.PendingTasks)
	assert.Len(t, stats.Months, 12)
}

func TestFormatEventDate(t *testing.T) {
	assert.Equal(t, "10 March", FormatEventDate(10, 2))
	assert.Equal(t, "", FormatEventDate(10, 12))
}
