package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lerntracker/internal/models"
)

var fixedNow = time.Date(2024, time.January, 24, 10, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStorage(t *testing.T, opts ...Option) *MemoryStorage {
	t.Helper()
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
		WithLocation(time.UTC),
	}
	return NewMemoryStorage(append(base, opts...)...)
}

func addTestCourse(t *testing.T, s *MemoryStorage) *models.Course {
	t.Helper()
	c, err := s.AddCourse(models.CourseInput{
		Title:        "React - The Complete Guide",
		Platform:     "Udemy",
		Category:     "Web Development",
		TotalHours:   "48",
		TotalLessons: "40",
		StartDate:    "2024-01-15",
	})
	require.NoError(t, err)
	return c
}

func TestAddCourse(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, models.CourseNotStarted, c.Status)
	assert.Equal(t, 48.0, c.TotalHours)
	assert.Equal(t, 40, c.TotalLessons)
	assert.Zero(t, c.CompletedLessons)
	assert.Nil(t, c.DueDate)
	assert.Len(t, s.GetAllCourses(), 1)
}

func TestAddCourseInvalidNumbersFallBackToZero(t *testing.T) {
	s := newTestStorage(t)
	c, err := s.AddCourse(models.CourseInput{
		Title:        "Go",
		Platform:     "Coursera",
		Category:     "Programming",
		TotalHours:   "viele",
		TotalLessons: "-3",
		StartDate:    "2024-01-15",
	})
	require.NoError(t, err)
	assert.Zero(t, c.TotalHours)
	assert.Zero(t, c.TotalLessons)

	// riesige Lektionszahlen dürfen nicht überlaufen
	huge, err := s.AddCourse(models.CourseInput{
		Title:        "Rust",
		Platform:     "Udemy",
		Category:     "Programming",
		TotalLessons: "1e30",
		StartDate:    "2024-01-15",
	})
	require.NoError(t, err)
	assert.Zero(t, huge.TotalLessons)

	zero := 0
	updated, err := s.UpdateCourseProgress(huge.ID, models.ProgressInput{CompletedLessons: &zero})
	require.NoError(t, err)
	assert.Zero(t, updated.CompletedLessons)
}

func TestAddCourseValidation(t *testing.T) {
	s := newTestStorage(t)

	tests := []struct {
		name  string
		in    models.CourseInput
		field string
	}{
		{"ohne Titel", models.CourseInput{Platform: "Udemy", Category: "x", StartDate: "2024-01-01"}, "title"},
		{"ohne Plattform", models.CourseInput{Title: "t", Category: "x", StartDate: "2024-01-01"}, "platform"},
		{"ohne Startdatum", models.CourseInput{Title: "t", Platform: "Udemy", Category: "x"}, "start_date"},
		{"kaputtes Datum", models.CourseInput{Title: "t", Platform: "Udemy", Category: "x", StartDate: "gestern"}, "start_date"},
		{"nur Leerzeichen", models.CourseInput{Title: "   ", Platform: " ", Category: "\t", StartDate: "2024-01-01"}, "title"},
		{"Plattform aus Leerzeichen", models.CourseInput{Title: "t", Platform: "  ", Category: "x", StartDate: "2024-01-01"}, "platform"},
		{"Kategorie aus Leerzeichen", models.CourseInput{Title: "t", Platform: "Udemy", Category: " ", StartDate: "2024-01-01"}, "category"},
		{"falscher Status", models.CourseInput{Title: "t", Platform: "Udemy", Category: "x", StartDate: "2024-01-01", Status: "paused"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddCourse(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Empty(t, s.GetAllCourses())
}

func TestUpdateCourseProgress(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	lessons := 30
	hours := 36.5
	updated, err := s.UpdateCourseProgress(c.ID, models.ProgressInput{
		CompletedLessons: &lessons,
		CompletedHours:   &hours,
		Status:           models.CourseInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.CompletedLessons)
	assert.Equal(t, 36.5, updated.CompletedHours)
	assert.Equal(t, models.CourseInProgress, updated.Status)

	tooMany := 41
	_, err = s.UpdateCourseProgress(c.ID, models.ProgressInput{CompletedLessons: &tooMany})
	assert.ErrorIs(t, err, ErrValidation)

	negative := -1
	_, err = s.UpdateCourseProgress(c.ID, models.ProgressInput{CompletedLessons: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := s.GetCourse(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.CompletedLessons)

	_, err = s.UpdateCourseProgress("fehlt", models.ProgressInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCourseCascades(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)
	other := addTestCourse(t, s)

	_, err := s.AddLesson(c.ID, models.LessonInput{Title: "Hooks", Summary: "useState", Duration: "45"})
	require.NoError(t, err)
	_, err = s.AddAssignment(c.ID, models.AssignmentInput{Title: "Todo", Description: "App", DueDate: "2024-02-01"})
	require.NoError(t, err)
	_, err = s.AddContact(c.ID, models.ContactInput{Name: "Ann", Platform: models.PlatformLinkedIn, ProfileURL: "https://linkedin.com/in/ann", Field: "Frontend"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCourse(c.ID))

	snap := s.Snapshot()
	require.Len(t, snap.Courses, 1)
	assert.Equal(t, other.ID, snap.Courses[0].ID)
	assert.NotContains(t, snap.Lessons, c.ID)
	assert.NotContains(t, snap.Assignments, c.ID)
	assert.NotContains(t, snap.Portfolios, c.ID)

	assert.ErrorIs(t, s.DeleteCourse(c.ID), ErrNotFound)
}

func TestAddLesson(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	l, err := s.AddLesson(c.ID, models.LessonInput{Title: "Hooks", Summary: "useState und useEffect", Duration: "45"})
	require.NoError(t, err)
	assert.Equal(t, 45, l.Duration)
	assert.Equal(t, c.ID, l.CourseID)
	assert.False(t, l.Completed)
	assert.Zero(t, l.CompletedDuration)
	assert.Equal(t, models.LessonVideo, l.Type)

	lessons, err := s.GetLessonsByCourse(c.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, l.ID, lessons[0].ID)
}

func TestAddLessonUniqueIDs(t *testing.T) {
	// Generator liefert zweimal dieselbe ID
	ids := []string{"c1", "dup", "dup", "fresh"}
	i := 0
	s := newTestStorage(t, WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))
	c := addTestCourse(t, s)

	first, err := s.AddLesson(c.ID, models.LessonInput{Title: "a", Summary: "a", Duration: "10"})
	require.NoError(t, err)
	second, err := s.AddLesson(c.ID, models.LessonInput{Title: "b", Summary: "b", Duration: "10"})
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestAddLessonInvalidDuration(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	for _, d := range []models.FormValue{"", "0", "-5", "zehn", "4.5"} {
		_, err := s.AddLesson(c.ID, models.LessonInput{Title: "a", Summary: "b", Duration: d})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "duration %q", d)
		assert.Equal(t, "duration", ve.Field)
	}

	_, err := s.AddLesson("fehlt", models.LessonInput{Title: "a", Summary: "b", Duration: "5"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetLessonCompleteIsIdempotent(t *testing.T) {
	now := fixedNow
	s := newTestStorage(t, WithClock(func() time.Time { return now }))
	c := addTestCourse(t, s)
	l, err := s.AddLesson(c.ID, models.LessonInput{Title: "Hooks", Summary: "x", Duration: "45"})
	require.NoError(t, err)

	done, err := s.SetLessonComplete(c.ID, l.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, 45, done.CompletedDuration)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, fixedNow, *done.CompletedAt)

	now = fixedNow.Add(2 * time.Hour)
	again, err := s.SetLessonComplete(c.ID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, *again.CompletedAt)

	_, err = s.SetLessonComplete(c.ID, "fehlt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignmentStatusTransitions(t *testing.T) {
	now := fixedNow
	s := newTestStorage(t, WithClock(func() time.Time { return now }))
	c := addTestCourse(t, s)

	a, err := s.AddAssignment(c.ID, models.AssignmentInput{
		Title:       "Todo App",
		Description: "Mit Hooks",
		DueDate:     "2024-01-25",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentPending, a.Status)
	assert.Equal(t, models.AssignmentProject, a.Type)
	assert.Nil(t, a.SubmittedAt)

	done, err := s.SetAssignmentStatus(c.ID, a.ID, models.AssignmentCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.SubmittedAt)
	assert.Equal(t, fixedNow, *done.SubmittedAt)

	now = fixedNow.Add(24 * time.Hour)
	again, err := s.SetAssignmentStatus(c.ID, a.ID, models.AssignmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, *again.SubmittedAt)

	_, err = s.SetAssignmentStatus(c.ID, a.ID, "archived")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.SetAssignmentStatus(c.ID, "fehlt", models.AssignmentPending)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactLimit(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	for i := 0; i < models.MaxContacts; i++ {
		_, err := s.AddContact(c.ID, models.ContactInput{
			Name:       fmt.Sprintf("Kontakt %d", i),
			Platform:   models.PlatformGitHub,
			ProfileURL: fmt.Sprintf("https://github.com/user%d", i),
			Field:      "Go",
		})
		require.NoError(t, err)
	}

	_, err := s.AddContact(c.ID, models.ContactInput{
		Name:       "Zu viel",
		Platform:   models.PlatformGitHub,
		ProfileURL: "https://github.com/extra",
		Field:      "Go",
	})
	assert.ErrorIs(t, err, ErrContactLimit)

	p, err := s.GetPortfolio(c.ID)
	require.NoError(t, err)
	assert.Len(t, p.Contacts, models.MaxContacts)
}

func TestContactLimitConfigurable(t *testing.T) {
	s := newTestStorage(t, WithContactLimit(1))
	c := addTestCourse(t, s)
	in := models.ContactInput{Name: "A", Platform: models.PlatformOther, ProfileURL: "https://example.com", Field: "x"}

	_, err := s.AddContact(c.ID, in)
	require.NoError(t, err)
	_, err = s.AddContact(c.ID, in)
	assert.ErrorIs(t, err, ErrContactLimit)
}

func TestPortfolio(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	empty, err := s.GetPortfolio(c.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty.Certificates)
	assert.NotNil(t, empty.Projects)
	assert.NotNil(t, empty.Contacts)

	_, err = s.AddCertificate(c.ID, models.CertificateInput{Name: "React Developer", Issuer: "Udemy", IssueDate: "2024-01-20"})
	require.NoError(t, err)
	pr, err := s.AddProject(c.ID, models.ProjectInput{
		Title:         "Todo App",
		Description:   "Hooks",
		Technologies:  "React, TypeScript, ,Tailwind ",
		CompletedDate: "2024-01-22",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "TypeScript", "Tailwind"}, pr.Technologies)

	_, err = s.AddCertificate(c.ID, models.CertificateInput{Name: "x", Issuer: "y", IssueDate: "2024-01-20", URL: "kein link"})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := s.GetPortfolio(c.ID)
	require.NoError(t, err)
	assert.Len(t, p.Certificates, 1)
	assert.Len(t, p.Projects, 1)

	_, err = s.GetPortfolio("fehlt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	env := Env{Now: fixedNow, NewID: sequentialIDs(), Location: time.UTC}
	s0 := NewState()

	s1, res, err := Reduce(s0, AddCourse{Input: models.CourseInput{Title: "t", Platform: "p", Category: "c", StartDate: "2024-01-01", TotalLessons: "5"}}, env)
	require.NoError(t, err)
	course := res.(models.Course)
	assert.Empty(t, s0.Courses)

	s2, _, err := Reduce(s1, AddLesson{CourseID: course.ID, Input: models.LessonInput{Title: "l", Summary: "s", Duration: "3"}}, env)
	require.NoError(t, err)
	assert.Empty(t, s1.Lessons[course.ID])
	require.Len(t, s2.Lessons[course.ID], 1)

	lessonID := s2.Lessons[course.ID][0].ID
	s3, _, err := Reduce(s2, CompleteLesson{CourseID: course.ID, LessonID: lessonID}, env)
	require.NoError(t, err)
	assert.False(t, s2.Lessons[course.ID][0].Completed)
	assert.True(t, s3.Lessons[course.ID][0].Completed)

	s4, _, err := Reduce(s3, DeleteCourse{CourseID: course.ID}, env)
	require.NoError(t, err)
	assert.Len(t, s3.Courses, 1)
	assert.Empty(t, s4.Courses)
}

func TestReduceUnknownAction(t *testing.T) {
	s0 := NewState()
	s1, _, err := Reduce(s0, unknownAction{}, Env{})
	assert.Error(t, err)
	assert.Equal(t, s0, s1)
}

type unknownAction struct{}

func (unknownAction) Name() string { return "unknown" }

func TestSnapshotIsIndependent(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)
	_, err := s.AddLesson(c.ID, models.LessonInput{Title: "a", Summary: "b", Duration: "5"})
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Courses[0].Title = "verändert"
	snap.Lessons[c.ID][0].Title = "verändert"

	got, err := s.GetCourse(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "React - The Complete Guide", got.Title)
	lessons, err := s.GetLessonsByCourse(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", lessons[0].Title)
}

func TestReplace(t *testing.T) {
	s := newTestStorage(t)
	addTestCourse(t, s)

	st := NewState()
	st.Courses = append(st.Courses, models.Course{ID: "seed", Title: "Seed"})
	_, err := s.Dispatch(Replace{State: st})
	require.NoError(t, err)

	st.Courses[0].Title = "nachträglich"
	got, err := s.GetCourse("seed")
	require.NoError(t, err)
	assert.Equal(t, "Seed", got.Title)
	assert.Len(t, s.GetAllCourses(), 1)
}

func TestSubscribeNotifiesInOrder(t *testing.T) {
	s := newTestStorage(t)

	var counts []int
	cancel := s.Subscribe(func(st State) {
		counts = append(counts, len(st.Courses))
	})

	addTestCourse(t, s)
	addTestCourse(t, s)
	_, err := s.AddCourse(models.CourseInput{})
	require.Error(t, err)

	cancel()
	addTestCourse(t, s)

	assert.Equal(t, []int{1, 2}, counts)
}

func TestConcurrentDispatch(t *testing.T) {
	s := NewMemoryStorage()
	c, err := s.AddCourse(models.CourseInput{Title: "t", Platform: "p", Category: "c", StartDate: "2024-01-01"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddLesson(c.ID, models.LessonInput{Title: "l", Summary: "s", Duration: "1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lessons, err := s.GetLessonsByCourse(c.ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 20)
}

func TestBlankInputsAreRejected(t *testing.T) {
	s := newTestStorage(t)
	c := addTestCourse(t, s)

	_, err := s.AddLesson(c.ID, models.LessonInput{Title: "  ", Summary: "s", Duration: "5"})
	assert.True(t, IsValidation(err))
	_, err = s.AddAssignment(c.ID, models.AssignmentInput{Title: "a", Description: " ", DueDate: "2024-02-01"})
	assert.True(t, IsValidation(err))
	_, err = s.AddContact(c.ID, models.ContactInput{
		Name:       " ",
		Platform:   models.PlatformGitHub,
		ProfileURL: "https://github.com/x",
		Field:      "Go",
	})
	assert.True(t, IsValidation(err))
}

func TestSubscriberCanCancelItself(t *testing.T) {
	s := newTestStorage(t)

	calls := 0
	var cancel func()
	cancel = s.Subscribe(func(State) {
		calls++
		cancel()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		addTestCourse(t, s)
		addTestCourse(t, s)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blockiert, wenn sich ein Abonnent abmeldet")
	}
	assert.Equal(t, 1, calls)
}

func TestSubscriberCanReadDuringConcurrentDispatch(t *testing.T) {
	s := newTestStorage(t)

	var mu sync.Mutex
	var counts []int
	s.Subscribe(func(st State) {
		snap := s.Snapshot()
		assert.GreaterOrEqual(t, len(snap.Courses), len(st.Courses))
		mu.Lock()
		counts = append(counts, len(st.Courses))
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.AddCourse(models.CourseInput{Title: "t", Platform: "p", Category: "c", StartDate: "2024-01-01"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blockiert, wenn ein Abonnent Snapshot aufruft")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, counts, 10)
	for i, n := range counts {
		assert.Equal(t, i+1, n)
	}
}
