package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/models"
)

func signedIn(t *testing.T, username string) *State {
	t.Helper()
	s := New()
	tok := s.Authenticate(username)
	require.True(t, s.ApplyProjects(tok, []models.Project{{ID: 1, Title: "P"}, {ID: 2, Title: "Q"}}))
	return s
}

func TestNewStateIsUnauthenticated(t *testing.T) {
	s := New()
	assert.Equal(t, ScreenUnauthenticated, s.Screen())
	assert.False(t, s.Session().Authenticated)
	assert.Equal(t, FilterAll, s.Filter())
	assert.Equal(t, SortAscending, s.SortOrder())
}

func TestScreenTransitions(t *testing.T) {
	s := New()

	_, err := s.SelectProject(models.Project{ID: 1})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, s.LeaveProject(), ErrInvalidTransition)

	s.Authenticate("alice")
	assert.Equal(t, ScreenProjectSelection, s.Screen())
	assert.Equal(t, "alice", s.Username())

	_, err = s.SelectProject(models.Project{ID: 1, Title: "P"})
	require.NoError(t, err)
	assert.Equal(t, ScreenTaskManager, s.Screen())
	cur, ok := s.CurrentProject()
	require.True(t, ok)
	assert.Equal(t, int64(1), cur.ID)

	_, err = s.SelectProject(models.Project{ID: 2})
	assert.ErrorIs(t, err, ErrInvalidTransition, "task manager must go back first")

	require.NoError(t, s.LeaveProject())
	assert.Equal(t, ScreenProjectSelection, s.Screen())
	_, ok = s.CurrentProject()
	assert.False(t, ok)
}

func TestAuthenticateTwiceKeepsScreen(t *testing.T) {
	s := signedIn(t, "alice")
	_, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)

	s.Authenticate("alice")
	assert.Equal(t, ScreenTaskManager, s.Screen())
}

func TestLogoutWhileProjectSelectedDiscardsInFlightFetch(t *testing.T) {
	s := signedIn(t, "alice")
	listTok := s.ProjectsToken()
	tok, err := s.SelectProject(models.Project{ID: 1, Title: "P"})
	require.NoError(t, err)

	s.Logout()

	assert.Equal(t, ScreenUnauthenticated, s.Screen())
	assert.False(t, s.Session().Authenticated)
	assert.Empty(t, s.Username())
	_, ok := s.CurrentProject()
	assert.False(t, ok)
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Projects())

	// responses for the old session arrive after logout
	assert.False(t, s.ApplyProjectData(tok, []models.Task{{ID: 1}}, []models.Member{{ID: 1}}))
	assert.False(t, s.ApplyProjects(listTok, []models.Project{{ID: 9}}))
	assert.False(t, s.ApplyCompletedProjects(listTok, []models.Project{{ID: 9}}))
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Projects())
	assert.Empty(t, s.CompletedProjects())

	// and the next login does not pick them up either
	s.Authenticate("bob")
	assert.False(t, s.ApplyProjects(listTok, []models.Project{{ID: 9}}))
}

func TestProjectDataFromLeftProjectIsDiscarded(t *testing.T) {
	s := signedIn(t, "alice")
	first, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)
	require.NoError(t, s.LeaveProject())
	second, err := s.SelectProject(models.Project{ID: 2})
	require.NoError(t, err)

	assert.False(t, s.ApplyProjectData(first, []models.Task{{ID: 1, Title: "from P"}}, nil))
	assert.True(t, s.ApplyProjectData(second, []models.Task{{ID: 2, Title: "from Q"}}, nil))
	assert.Equal(t, "from Q", s.Tasks()[0].Title)
}

func TestSupersededRefreshIsDiscarded(t *testing.T) {
	s := signedIn(t, "alice")
	older, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)
	newer, err := s.RefreshProject()
	require.NoError(t, err)

	assert.True(t, s.ApplyProjectData(newer, []models.Task{{ID: 1, Title: "new"}}, nil))
	assert.False(t, s.ApplyProjectData(older, []models.Task{{ID: 1, Title: "old"}}, nil))
	assert.Equal(t, "new", s.Tasks()[0].Title)
}

func TestRefreshProjectRequiresTaskManager(t *testing.T) {
	s := signedIn(t, "alice")
	_, err := s.RefreshProject()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestProjectCompletedReturnsToList(t *testing.T) {
	s := signedIn(t, "alice")
	_, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)

	s.ProjectCompleted(1)
	assert.Equal(t, ScreenProjectSelection, s.Screen())
	_, ok := s.CurrentProject()
	assert.False(t, ok)
}

func TestApplyProjectsRefreshesCurrentProject(t *testing.T) {
	s := signedIn(t, "alice")
	_, err := s.SelectProject(models.Project{ID: 1, Title: "P"})
	require.NoError(t, err)

	s.ApplyProjects(s.ProjectsToken(), []models.Project{{ID: 1, Title: "P renamed", JoinCode: "XY"}})
	cur, _ := s.CurrentProject()
	assert.Equal(t, "P renamed", cur.Title)
	assert.Equal(t, "XY", cur.JoinCode)
}

func TestProfileLifecycle(t *testing.T) {
	s := New()
	assert.False(t, s.ShowProfile(s.ProfileToken(), models.UserProfile{Username: "x"}))

	s = signedIn(t, "alice")
	assert.False(t, s.ShowProfile(s.ProfileToken(), models.UserProfile{Username: "x"}), "no project open")

	_, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)
	require.True(t, s.ShowProfile(s.ProfileToken(), models.UserProfile{Username: "bob"}))
	p, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "bob", p.Username)

	s.CloseProfile()
	_, ok = s.Profile()
	assert.False(t, ok)

	s.ShowProfile(s.ProfileToken(), models.UserProfile{Username: "bob"})
	s.Logout()
	_, ok = s.Profile()
	assert.False(t, ok)
}

func TestProfileTokenSurvivesRefreshOnly(t *testing.T) {
	s := signedIn(t, "alice")
	_, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)

	tok := s.ProfileToken()
	_, err = s.RefreshProject()
	require.NoError(t, err)
	assert.True(t, s.ProfileCurrent(tok), "a refresh keeps the project open")

	require.NoError(t, s.LeaveProject())
	assert.False(t, s.ShowProfile(tok, models.UserProfile{Username: "bob"}))
	assert.Equal(t, ScreenProjectSelection, s.Screen())

	_, err = s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)
	assert.False(t, s.ShowProfile(tok, models.UserProfile{Username: "bob"}), "reopening the project is a new visit")
	_, ok := s.Profile()
	assert.False(t, ok)
}

func TestStateVisibleTasksUsesSessionUsername(t *testing.T) {
	s := signedIn(t, "alice")
	tok, err := s.SelectProject(models.Project{ID: 1})
	require.NoError(t, err)
	require.True(t, s.ApplyProjectData(tok, scenarioTasks(t), nil))

	s.SetFilter(FilterCreated)
	assert.Equal(t, []string{"B"}, titles(s.VisibleTasks()))

	s.SetFilter(FilterAll)
	s.SetSortOrder(SortDescending)
	assert.Equal(t, []string{"B", "A"}, titles(s.VisibleTasks()))
}
