package timeoff

// Fixtures is the sample data seeded into an empty requests collection.
func Fixtures() []Request {
	return []Request{
		{
			ID:            "1",
			EmployeeID:    "emp-1",
			EmployeeName:  "John Martinez",
			Type:          TypeVacation,
			StartDate:     "2025-11-15",
			EndDate:       "2025-11-19",
			Days:          5,
			Reason:        "Family vacation",
			Status:        StatusPending,
			SubmittedDate: "2025-10-01",
		},
		{
			ID:            "2",
			EmployeeID:    "emp-1",
			EmployeeName:  "John Martinez",
			Type:          TypeSick,
			StartDate:     "2025-09-12",
			EndDate:       "2025-09-12",
			Days:          1,
			Reason:        "Medical appointment",
			Status:        StatusApproved,
			SubmittedDate: "2025-09-10",
			ReviewedBy:    "HR Admin",
			ReviewedDate:  "2025-09-11",
		},
	}
}
