// Package seed loads the demo dataset: one building, five staff accounts,
// five tenants, and five complaints in assorted workflow states.
package seed

import (
	"time"

	"staffportal/internal/core"
	"staffportal/pkg/domain"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// Apply replaces the store contents with the demo dataset.
func Apply(store *core.MemoryStore) {
	store.ImportState(DemoSnapshot())
}

// DemoSnapshot builds the demo dataset.
func DemoSnapshot() core.Snapshot {
	return core.Snapshot{
		Staff:      demoStaff(),
		Tenants:    demoTenants(),
		Complaints: demoComplaints(),
		Settings:   demoSettings(),
	}
}

func demoStaff() []domain.StaffUser {
	return []domain.StaffUser{
		{ID: "1", Email: "admin@building.com", Name: "John Admin", Role: domain.RoleAdmin, Phone: "+1-555-0101", Active: true, CreatedAt: date("2024-01-01")},
		{ID: "2", Email: "supervisor@building.com", Name: "Jane Supervisor", Role: domain.RoleSupervisor, Phone: "+1-555-0102", Active: true, CreatedAt: date("2024-01-01")},
		{ID: "3", Email: "tech@building.com", Name: "Mike Technician", Role: domain.RoleTechnician, Phone: "+1-555-0103", Active: true, CreatedAt: date("2024-01-01")},
		{ID: "4", Email: "tech2@building.com", Name: "Sarah Tech", Role: domain.RoleTechnician, Phone: "+1-555-0104", Active: true, CreatedAt: date("2024-02-01")},
		{ID: "5", Email: "supervisor2@building.com", Name: "Tom Supervisor", Role: domain.RoleSupervisor, Phone: "+1-555-0105", Active: false, CreatedAt: date("2024-01-15")},
	}
}

func demoTenants() []domain.Tenant {
	return []domain.Tenant{
		{
			Base:            domain.Base{ID: "tenant1", CreatedAt: date("2024-01-10"), UpdatedAt: date("2024-01-10")},
			Name:            "Alice Johnson",
			Email:           "alice.johnson@email.com",
			Phone:           "+1-555-0201",
			BuildingID:      "bld-001",
			BuildingName:    "Sunrise Apartments",
			ApartmentNo:     "101",
			Floor:           1,
			LeaseStartDate:  date("2024-01-15"),
			LeaseEndDate:    timePtr(date("2025-01-14")),
			RentAmount:      1200,
			SecurityDeposit: 1200,
			Active:          true,
			EmergencyContact: &domain.EmergencyContact{
				Name: "Robert Johnson", Phone: "+1-555-0301", Relationship: "Spouse",
			},
		},
		{
			Base:            domain.Base{ID: "tenant2", CreatedAt: date("2024-02-25"), UpdatedAt: date("2024-02-25")},
			Name:            "Bob Smith",
			Email:           "bob.smith@email.com",
			Phone:           "+1-555-0202",
			BuildingID:      "bld-001",
			BuildingName:    "Sunrise Apartments",
			ApartmentNo:     "205",
			Floor:           2,
			LeaseStartDate:  date("2024-03-01"),
			LeaseEndDate:    timePtr(date("2025-02-28")),
			RentAmount:      1350,
			SecurityDeposit: 1350,
			Active:          true,
			EmergencyContact: &domain.EmergencyContact{
				Name: "Mary Smith", Phone: "+1-555-0302", Relationship: "Mother",
			},
		},
		{
			Base:            domain.Base{ID: "tenant3", CreatedAt: date("2023-11-25"), UpdatedAt: date("2023-11-25")},
			Name:            "Carol Davis",
			Email:           "carol.davis@email.com",
			Phone:           "+1-555-0203",
			BuildingID:      "bld-002",
			BuildingName:    "Garden View Complex",
			ApartmentNo:     "312",
			Floor:           3,
			LeaseStartDate:  date("2023-12-01"),
			LeaseEndDate:    timePtr(date("2024-11-30")),
			RentAmount:      1450,
			SecurityDeposit: 1450,
			Active:          true,
		},
		{
			Base:            domain.Base{ID: "tenant4", CreatedAt: date("2024-05-25"), UpdatedAt: date("2024-05-25")},
			Name:            "David Wilson",
			Email:           "david.wilson@email.com",
			Phone:           "+1-555-0204",
			BuildingID:      "bld-002",
			BuildingName:    "Garden View Complex",
			ApartmentNo:     "408",
			Floor:           4,
			LeaseStartDate:  date("2024-06-01"),
			LeaseEndDate:    timePtr(date("2025-05-31")),
			RentAmount:      1500,
			SecurityDeposit: 1500,
			Active:          true,
			EmergencyContact: &domain.EmergencyContact{
				Name: "Sarah Wilson", Phone: "+1-555-0304", Relationship: "Sister",
			},
		},
		{
			Base:            domain.Base{ID: "tenant5", CreatedAt: date("2024-04-10"), UpdatedAt: date("2024-04-10")},
			Name:            "Eva Brown",
			Email:           "eva.brown@email.com",
			Phone:           "+1-555-0205",
			BuildingID:      "bld-003",
			BuildingName:    "Metro Heights",
			ApartmentNo:     "501",
			Floor:           5,
			LeaseStartDate:  date("2024-04-15"),
			LeaseEndDate:    timePtr(date("2025-04-14")),
			RentAmount:      1600,
			SecurityDeposit: 1600,
			Active:          true,
		},
	}
}

func demoComplaints() []domain.Complaint {
	return []domain.Complaint{
		{
			Base:        domain.Base{ID: "1", CreatedAt: date("2024-07-28"), UpdatedAt: date("2024-07-28")},
			TenantID:    "tenant1",
			TenantName:  "Alice Johnson",
			ApartmentNo: "101",
			Category:    domain.CategoryAC,
			Title:       "Air conditioning not working",
			Description: "The AC unit in the living room stopped working yesterday. It's getting very hot in the apartment.",
			Priority:    domain.PriorityHigh,
			Status:      domain.StatusOpen,
			Images:      []string{},
			Notes:       []domain.ComplaintNote{},
		},
		{
			Base:              domain.Base{ID: "2", CreatedAt: date("2024-07-27"), UpdatedAt: date("2024-07-28")},
			TenantID:          "tenant2",
			TenantName:        "Bob Smith",
			ApartmentNo:       "205",
			Category:          domain.CategoryPlumbing,
			Title:             "Kitchen sink leak",
			Description:       "Water is leaking from under the kitchen sink. The cabinet is getting damaged.",
			Priority:          domain.PriorityMedium,
			Status:            domain.StatusInProgress,
			AssignedStaffID:   strPtr("3"),
			AssignedStaffName: strPtr("Mike Technician"),
			Images:            []string{},
			Notes: []domain.ComplaintNote{
				{
					ID:          "note1",
					ComplaintID: "2",
					AuthorID:    "3",
					AuthorName:  "Mike Technician",
					Note:        "Inspected the sink. Need to replace the pipe fitting. Parts ordered.",
					CreatedAt:   date("2024-07-28"),
				},
			},
		},
		{
			Base:              domain.Base{ID: "3", CreatedAt: date("2024-07-25"), UpdatedAt: date("2024-07-26")},
			TenantID:          "tenant3",
			TenantName:        "Carol Davis",
			ApartmentNo:       "312",
			Category:          domain.CategoryElectrical,
			Title:             "Bathroom light flickering",
			Description:       "The bathroom light keeps flickering and sometimes goes out completely.",
			Priority:          domain.PriorityLow,
			Status:            domain.StatusResolved,
			AssignedStaffID:   strPtr("3"),
			AssignedStaffName: strPtr("Mike Technician"),
			ResolvedAt:        timePtr(date("2024-07-26")),
			Images:            []string{},
			Notes: []domain.ComplaintNote{
				{
					ID:          "note2",
					ComplaintID: "3",
					AuthorID:    "3",
					AuthorName:  "Mike Technician",
					Note:        "Replaced the light switch. Issue resolved.",
					CreatedAt:   date("2024-07-26"),
				},
			},
		},
		{
			Base:        domain.Base{ID: "4", CreatedAt: date("2024-07-29"), UpdatedAt: date("2024-07-29")},
			TenantID:    "tenant4",
			TenantName:  "David Wilson",
			ApartmentNo: "408",
			Category:    domain.CategoryMaintenance,
			Title:       "Broken window lock",
			Description: "The lock on the bedroom window is broken and won't close properly.",
			Priority:    domain.PriorityMedium,
			Status:      domain.StatusOpen,
			Images:      []string{},
			Notes:       []domain.ComplaintNote{},
		},
		{
			Base:        domain.Base{ID: "5", CreatedAt: date("2024-07-30"), UpdatedAt: date("2024-07-30")},
			TenantID:    "tenant5",
			TenantName:  "Eva Brown",
			ApartmentNo: "501",
			Category:    domain.CategoryAC,
			Title:       "AC making loud noise",
			Description: "The air conditioning unit is making a very loud grinding noise.",
			Priority:    domain.PriorityHigh,
			Status:      domain.StatusOpen,
			Images:      []string{},
			Notes:       []domain.ComplaintNote{},
		},
	}
}

func demoSettings() *domain.BuildingSettings {
	return &domain.BuildingSettings{
		ID:             "building_1",
		BuildingName:   "Sunset Towers",
		Address:        "123 Main Street",
		City:           "Springfield",
		State:          "IL",
		ZipCode:        "62701",
		NumberOfFloors: 12,
		NumberOfUnits:  48,
		ContactEmail:   "management@sunsettowers.com",
		ContactPhone:   "+1-555-0100",
		EmergencyPhone: "+1-555-0911",
		UpdatedAt:      date("2024-01-01"),
		UpdatedBy:      "System",
	}
}
