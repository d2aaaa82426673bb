package domain

import "time"

// Seed is the bootstrap state loaded into a fresh store.
type Seed struct {
	Users         []User
	Events        []Event
	Registrations []Registration
}

// DefaultSeed returns the demo accounts and events. Event dates are placed
// relative to now so the catalogue always shows upcoming activities.
func DefaultSeed(now time.Time) Seed {
	now = now.UTC().Truncate(time.Hour)
	day := 24 * time.Hour

	users := []User{
		{ID: "1", Name: "John Doe", Email: "student@campus.edu", Role: RoleStudent, CreatedAt: now},
		{ID: "2", Name: "Jane Smith", Email: "organizer@campus.edu", Role: RoleOrganizer, CreatedAt: now},
		{ID: "3", Name: "Admin User", Email: "admin@campus.edu", Role: RoleAdmin, CreatedAt: now},
	}

	organizer := users[1]
	event := func(id, title, desc, location string, cat Category, capacity, registered int, status EventStatus, in time.Duration) Event {
		return Event{
			ID:              id,
			Title:           title,
			Description:     desc,
			Date:            now.Add(in),
			Location:        location,
			Capacity:        capacity,
			RegisteredCount: registered,
			OrganizerID:     organizer.ID,
			OrganizerName:   organizer.Name,
			Status:          status,
			Category:        cat,
			CreatedAt:       now,
		}
	}

	events := []Event{
		event("1", "Tech Innovation Summit", "Talks and demos from student startups and industry engineers.",
			"Main Auditorium", CategoryTechnology, 200, 45, StatusApproved, 7*day),
		event("2", "Career Fair 2025", "Meet recruiters from over fifty companies hiring interns and graduates.",
			"Student Center Hall", CategoryCareer, 500, 120, StatusApproved, 14*day),
		event("3", "Campus Sustainability Workshop", "Hands-on session on reducing waste and energy use on campus.",
			"Green Building, Room 101", CategoryEnvironment, 50, 12, StatusPending, 10*day),
		event("4", "Student Art Exhibition", "Paintings, sculpture and digital work by fine arts students.",
			"Art Gallery", CategoryArts, 150, 30, StatusApproved, 21*day),
		event("5", "Hackathon Kickoff", "Form teams and pitch ideas for the weekend hackathon.",
			"Engineering Lab 3", CategoryTechnology, 80, 0, StatusRejected, 5*day),
	}

	registrations := []Registration{
		{
			ID:           "1",
			UserID:       users[0].ID,
			EventID:      events[0].ID,
			RegisteredAt: now.Add(-day),
			QRCode:       NewQRCode(events[0].ID, users[0].ID, now.Add(-day)),
		},
	}

	return Seed{Users: users, Events: events, Registrations: registrations}
}
