package directory

// Fixtures is the sample roster seeded into an empty employees collection.
func Fixtures() []Employee {
	return []Employee{
		{
			ID:         "emp-1",
			Name:       "John Martinez",
			Email:      "john.martinez@lacounty.gov",
			Department: "Public Works",
			Title:      "Senior Engineer",
			Manager:    "Sarah Chen",
			Phone:      "(213) 555-0123",
			HireDate:   "2018-03-15",
		},
		{
			ID:         "emp-2",
			Name:       "Sarah Chen",
			Email:      "sarah.chen@lacounty.gov",
			Department: "Public Works",
			Title:      "Engineering Manager",
			Manager:    "Robert Kim",
			Phone:      "(213) 555-0124",
			HireDate:   "2015-06-01",
		},
		{
			ID:         "emp-3",
			Name:       "Michael Johnson",
			Email:      "michael.johnson@lacounty.gov",
			Department: "Finance",
			Title:      "Budget Analyst",
			Manager:    "Lisa Wong",
			Phone:      "(213) 555-0125",
			HireDate:   "2019-09-10",
		},
		{
			ID:         "emp-4",
			Name:       "Emily Rodriguez",
			Email:      "emily.rodriguez@lacounty.gov",
			Department: "IT Services",
			Title:      "Systems Administrator",
			Manager:    "David Lee",
			Phone:      "(213) 555-0126",
			HireDate:   "2020-01-20",
		},
		{
			ID:         "emp-5",
			Name:       "David Lee",
			Email:      "david.lee@lacounty.gov",
			Department: "IT Services",
			Title:      "IT Director",
			Manager:    "Chief Information Officer",
			Phone:      "(213) 555-0127",
			HireDate:   "2012-04-15",
		},
	}
}
