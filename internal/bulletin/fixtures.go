package bulletin

// Fixtures is the sample data seeded into an empty announcements collection.
func Fixtures() []Announcement {
	return []Announcement{
		{
			ID:       "1",
			Title:    "Holiday Schedule 2025",
			Content:  "Please review the updated holiday schedule for the remainder of 2025. Thanksgiving: Nov 27-28, Christmas: Dec 25-26, New Year: Jan 1.",
			Author:   "HR Admin",
			Date:     "2025-10-01",
			Priority: PriorityHigh,
		},
		{
			ID:       "2",
			Title:    "Open Enrollment Period",
			Content:  "Open enrollment for health benefits begins November 1st and ends November 30th. Please review your benefits and make any necessary changes.",
			Author:   "HR Admin",
			Date:     "2025-09-28",
			Priority: PriorityHigh,
		},
		{
			ID:       "3",
			Title:    "Employee Wellness Program",
			Content:  "Join our new wellness program! Free fitness classes available every Tuesday and Thursday at 5 PM in Conference Room A.",
			Author:   "HR Admin",
			Date:     "2025-09-20",
			Priority: PriorityMedium,
		},
	}
}
