// Package seed enthält die Demo-Daten, mit denen der Tracker startet.
package seed

import (
	"time"

	"lerntracker/internal/models"
	"lerntracker/internal/storage"
)

// State baut den Demo-Zustand; Kalenderdaten liegen in loc
func State(loc *time.Location) storage.State {
	if loc == nil {
		loc = time.Local
	}
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	at := func(v string) *time.Time {
		t, _ := time.Parse(time.RFC3339, v)
		return &t
	}
	ptr := func(t time.Time) *time.Time { return &t }

	st := storage.NewState()
	st.Courses = []models.Course{
		{
			ID:               "1",
			Title:            "React Advanced Patterns",
			Description:      "Master advanced React patterns including hooks, context, and performance optimization techniques for building scalable applications.",
			Platform:         "Udemy",
			Category:         "Programming",
			TotalHours:       40,
			CompletedHours:   30,
			TotalLessons:     25,
			CompletedLessons: 19,
			StartDate:        day(2024, time.January, 15),
			DueDate:          ptr(day(2024, time.February, 15)),
			Status:           models.CourseInProgress,
		},
		{
			ID:               "2",
			Title:            "Data Science with Python",
			Description:      "Comprehensive course covering pandas, numpy, matplotlib, and machine learning fundamentals for data analysis.",
			Platform:         "Coursera",
			Category:         "Data Science",
			TotalHours:       60,
			CompletedHours:   60,
			TotalLessons:     40,
			CompletedLessons: 40,
			StartDate:        day(2023, time.November, 1),
			DueDate:          ptr(day(2024, time.January, 1)),
			Status:           models.CourseCompleted,
		},
		{
			ID:               "3",
			Title:            "UI/UX Design Fundamentals",
			Description:      "Learn the principles of user interface and user experience design using modern tools and methodologies.",
			Platform:         "Skillshare",
			Category:         "Design",
			TotalHours:       30,
			CompletedHours:   7.5,
			TotalLessons:     20,
			CompletedLessons: 5,
			StartDate:        day(2024, time.January, 20),
			Status:           models.CourseInProgress,
		},
		{
			ID:           "4",
			Title:        "JavaScript ES2024 Features",
			Description:  "Explore the latest JavaScript features and modern development practices for efficient web development.",
			Platform:     "YouTube",
			Category:     "Programming",
			TotalHours:   15,
			TotalLessons: 12,
			StartDate:    day(2024, time.February, 1),
			Status:       models.CourseNotStarted,
		},
	}

	st.Lessons["1"] = []models.Lesson{
		{
			ID:                "1",
			CourseID:          "1",
			Title:             "Introduction to Advanced React Patterns",
			Summary:           "Overview of design patterns and their importance in React applications",
			Duration:          45,
			CompletedDuration: 45,
			SourceLink:        "https://udemy.com/lesson1",
			Completed:         true,
			CompletedAt:       at("2024-01-16T10:30:00Z"),
			Type:              models.LessonVideo,
			Files: []models.FileAttachment{
				{ID: "1", Name: "intro-notes.pdf", Type: "pdf", URL: "/files/intro-notes.pdf"},
			},
		},
		{
			ID:                "2",
			CourseID:          "1",
			Title:             "Compound Components Pattern",
			Summary:           "Learn to build flexible and reusable compound components",
			Duration:          60,
			CompletedDuration: 35,
			SourceLink:        "https://udemy.com/lesson2",
			Type:              models.LessonVideo,
			Files:             []models.FileAttachment{},
		},
		{
			ID:         "3",
			CourseID:   "1",
			Title:      "Render Props and Higher-Order Components",
			Summary:    "Advanced composition patterns for sharing logic between components",
			Duration:   75,
			SourceLink: "https://udemy.com/lesson3",
			Type:       models.LessonVideo,
			Files:      []models.FileAttachment{},
		},
	}

	st.Assignments["1"] = []models.Assignment{
		{
			ID:          "1",
			CourseID:    "1",
			Title:       "Build a Compound Component Library",
			Description: "Create a reusable UI library using compound component patterns",
			Type:        models.AssignmentProject,
			Status:      models.AssignmentCompleted,
			DueDate:     day(2024, time.January, 25),
			SubmittedAt: at("2024-01-24T15:30:00Z"),
			LessonID:    "2",
			Files: []models.FileAttachment{
				{ID: "1", Name: "component-library.zip", Type: "zip", URL: "/files/library.zip"},
			},
		},
		{
			ID:          "2",
			CourseID:    "1",
			Title:       "Performance Optimization Quiz",
			Description: "Test your understanding of React performance optimization techniques",
			Type:        models.AssignmentQuiz,
			Status:      models.AssignmentPending,
			DueDate:     day(2024, time.February, 10),
			LessonID:    "5",
			Files:       []models.FileAttachment{},
		},
	}

	st.Portfolios["1"] = storage.Portfolio{
		Certificates: []models.Certificate{
			{
				ID:        "1",
				CourseID:  "1",
				Name:      "React Advanced Patterns Completion",
				Issuer:    "Udemy",
				IssueDate: day(2024, time.January, 30),
				URL:       "https://udemy.com/certificate/UC-123456",
			},
		},
		Projects: []models.Project{
			{
				ID:            "1",
				CourseID:      "1",
				Title:         "E-commerce Dashboard",
				Description:   "Built a comprehensive admin dashboard using React advanced patterns including compound components and render props.",
				URL:           "https://github.com/user/ecommerce-dashboard",
				Technologies:  []string{"React", "TypeScript", "Tailwind CSS", "React Query"},
				CompletedDate: day(2024, time.January, 28),
			},
		},
		Contacts: []models.ProfessionalContact{
			{
				ID:         "1",
				CourseID:   "1",
				Name:       "Dan Abramov",
				Platform:   models.PlatformTwitter,
				ProfileURL: "https://twitter.com/dan_abramov",
				Field:      "React Development",
			},
			{
				ID:         "2",
				CourseID:   "1",
				Name:       "Kent C. Dodds",
				Platform:   models.PlatformTwitter,
				ProfileURL: "https://twitter.com/kentcdodds",
				Field:      "Testing & React",
			},
		},
	}

	return st
}

// Load ersetzt den Zustand des Speichers durch die Demo-Daten
func Load(s storage.Storage, loc *time.Location) error {
	_, err := s.Dispatch(storage.Replace{State: State(loc)})
	return err
}
