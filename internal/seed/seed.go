// Package seed loads staff and customers from a YAML file and creates them
// through the regular services, so seeded data passes the same validation.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/service"
	apperrors "github.com/spec-kit/celebration-service/pkg/util/errorutil"
)

// Staff is one staff account in the seed file.
type Staff struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Customer is one customer in the seed file. Month is 1-12 here, as people
// write it; Staff refers to a username.
type Customer struct {
	Name      string `yaml:"name"`
	Phone     string `yaml:"phone"`
	EventType string `yaml:"event_type"`
	Day       int    `yaml:"day"`
	Month     int    `yaml:"month"`
	Staff     string `yaml:"staff"`
}

// File is a parsed seed file.
type File struct {
	Staff     []Staff    `yaml:"staff"`
	Customers []Customer `yaml:"customers"`
}

// Result counts what Apply did.
type Result struct {
	StaffCreated     int
	StaffSkipped     int
	CustomersCreated int
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes seed YAML and checks the cross references.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if len(f.Staff) == 0 && len(f.Customers) == 0 {
		return nil, errors.New("seed file has no staff or customers")
	}

	for i, c := range f.Customers {
		if c.Month < 1 || c.Month > 12 {
			return nil, fmt.Errorf("customer %d (%q): month must be 1-12", i+1, c.Name)
		}
		if c.Staff == "" {
			return nil, fmt.Errorf("customer %d (%q): staff is required", i+1, c.Name)
		}
	}
	return &f, nil
}

// Seeder applies a seed file as the admin.
type Seeder struct {
	staff     *service.StaffService
	customers *service.CustomerService
	actor     domain.Principal
}

// NewSeeder constructs a seeder acting as the configured admin.
func NewSeeder(staff *service.StaffService, customers *service.CustomerService, adminUsername string) *Seeder {
	return &Seeder{
		staff:     staff,
		customers: customers,
		actor:     domain.Principal{ID: domain.AdminID, Username: adminUsername, Role: domain.RoleAdmin},
	}
}

// Apply creates the staff accounts, skipping usernames that already exist,
// and then the customers.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result

	existing, err := s.staff.ListStaffMembers(ctx, s.actor)
	if err != nil {
		return res, err
	}
	ids := make(map[string]string, len(existing))
	for _, st := range existing {
		ids[st.Username] = st.ID
	}

	for _, st := range f.Staff {
		if _, ok := ids[st.Username]; ok {
			res.StaffSkipped++
			continue
		}
		created, err := s.staff.CreateStaffMember(ctx, s.actor, st.Username, st.Password)
		if err != nil {
			if apperrors.IsCode(err, "CONFLICT") {
				res.StaffSkipped++
				continue
			}
			return res, fmt.Errorf("staff %q: %w", st.Username, err)
		}
		ids[created.Username] = created.ID
		res.StaffCreated++
	}

	for _, c := range f.Customers {
		staffID, ok := ids[c.Staff]
		if !ok {
			return res, fmt.Errorf("customer %q: unknown staff %q", c.Name, c.Staff)
		}
		_, err := s.customers.CreateCustomer(ctx, s.actor, service.CustomerInput{
			Name:            c.Name,
			Phone:           c.Phone,
			EventType:       domain.EventType(c.EventType),
			Day:             c.Day,
			Month:           c.Month - 1,
			AssignedStaffID: staffID,
		})
		if err != nil {
			return res, fmt.Errorf("customer %q: %w", c.Name, err)
		}
		res.CustomersCreated++
	}
	return res, nil
}
