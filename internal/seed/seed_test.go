package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/config"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/repository"
	"github.com/spec-kit/celebration-service/internal/repository/memory"
	"github.com/spec-kit/celebration-service/internal/service"
)

const sample = `
staff:
  - username: asha
    password: pw1
  - username: ravi
    password: pw2
customers:
  - name: Meera
    phone: "555-0100"
    event_type: birthday
    day: 10
    month: 3
    staff: asha
  - name: Arjun
    phone: "555-0101"
    event_type: ANNIVERSARY
    day: 29
    month: 2
    staff: ravi
`

func TestParseRejectsBadMonth(t *testing.T) {
	_, err := Parse([]byte("customers:\n  - name: x\n    month: 0\n    staff: a\n"))
	assert.ErrorContains(t, err, "month must be 1-12")

	_, err = Parse([]byte("{}"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Customers, 2)

	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: 4, AdminUsername: "admin"}}
	staffRepo := memory.NewStaffRepository()
	customerRepo := memory.NewCustomerRepository()
	dispatcher := events.NewInMemoryDispatcher()
	seeder := NewSeeder(
		service.NewStaffService(cfg, staffRepo, memory.NewSessionRepository(), dispatcher, zap.NewNop()),
		service.NewCustomerService(customerRepo, staffRepo, dispatcher, zap.NewNop()),
		"admin",
	)

	res, err := seeder.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Result{StaffCreated: 2, CustomersCreated: 2}, res)

	customers, err := customerRepo.List(context.Background(), repository.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Arjun", customers[0].Name)
	assert.Equal(t, 1, customers[0].Month, "seed months are 1-based")
	assert.Equal(t, "ravi", customers[0].AssignedStaffName)
	assert.Equal(t, domain.EventTypeBirthday, customers[1].EventType)

	again, err := seeder.Apply(context.Background(), &File{Staff: f.Staff})
	require.NoError(t, err)
	assert.Equal(t, Result{StaffSkipped: 2}, again)
}
