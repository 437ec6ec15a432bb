package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/adapter/sqlite"
	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/domain/event"
	"github.com/eeese/showcase/internal/port/mocks"
)

type projectFixture struct {
	local  *mocks.MockProjectSource
	remote *mocks.MockProjectSource
	repo   *ProjectRepository
}

func newProjectFixture(t *testing.T, cfg *Config) *projectFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &projectFixture{
		local:  mocks.NewMockProjectSource(ctrl),
		remote: mocks.NewMockProjectSource(ctrl),
	}
	f.repo = NewProjectRepository(cfg, f.local, f.remote, zap.NewNop())
	// Registered after the controller so it runs before the mock assertions.
	t.Cleanup(f.repo.Wait)
	return f
}

func proj(id string, c domain.Category) domain.Project {
	return domain.MustProject(domain.ProjectAttrs{ID: id, Name: "Project " + id, Category: c})
}

func statusOf(repo *ProjectRepository, c domain.Category) CategoryStatus {
	for _, s := range repo.Status() {
		if s.Category == c {
			return s
		}
	}
	return CategoryStatus{}
}

var (
	pPower   = proj("p1", domain.CategoryPower)
	pPower2  = proj("p2", domain.CategoryPower)
	pTelecom = proj("t1", domain.CategoryTelecom)
	pSoft    = proj("s1", domain.CategorySoftware)
	catalog  = []domain.Project{pPower, pSoft, pTelecom}
)

// populate fills the cache through a remote-won unfiltered read.
func (f *projectFixture) populate(t *testing.T, projects []domain.Project) {
	t.Helper()

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(projects, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), projects).Return(nil)

	got, err := f.repo.GetProjects(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, len(projects))
	for _, c := range domain.Categories() {
		require.False(t, statusOf(f.repo, c).Dirty, "category %s should be valid", c)
	}
}

func TestProjectRepository_RemoteWinsWhenLocalEmpty(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)

	f.local.EXPECT().GetProjectsByCategory(gomock.Any(), false, domain.CategoryPower).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjectsByCategory(gomock.Any(), true, domain.CategoryPower).Return([]domain.Project{pPower}, nil)
	f.local.EXPECT().SetProjectsInCategory(gomock.Any(), domain.CategoryPower, []domain.Project{pPower}).Return(nil)

	got, err := f.repo.GetProjectsByCategory(ctx, false, domain.CategoryPower)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{pPower}, got)
	assert.False(t, statusOf(f.repo, domain.CategoryPower).Dirty)
	assert.True(t, statusOf(f.repo, domain.CategoryTelecom).Dirty)

	// A valid category is served from the cache without further calls.
	for i := 0; i < 3; i++ {
		again, err := f.repo.GetProjectsByCategory(ctx, false, domain.CategoryPower)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestProjectRepository_InsertRetriggersRace(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)

	f.local.EXPECT().GetProjectsByCategory(gomock.Any(), false, domain.CategoryPower).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjectsByCategory(gomock.Any(), true, domain.CategoryPower).Return([]domain.Project{pPower}, nil)
	f.local.EXPECT().SetProjectsInCategory(gomock.Any(), domain.CategoryPower, []domain.Project{pPower}).Return(nil)

	_, err := f.repo.GetProjectsByCategory(ctx, false, domain.CategoryPower)
	require.NoError(t, err)

	f.local.EXPECT().InsertProject(gomock.Any(), pPower2).Return(nil)
	require.NoError(t, f.repo.InsertProject(ctx, pPower2))
	assert.True(t, statusOf(f.repo, domain.CategoryPower).Dirty)

	both := []domain.Project{pPower, pPower2}
	f.local.EXPECT().GetProjectsByCategory(gomock.Any(), false, domain.CategoryPower).Return(both, nil)
	f.remote.EXPECT().GetProjectsByCategory(gomock.Any(), true, domain.CategoryPower).Return(both, nil)
	// Whichever source wins, the remote result is written through once.
	f.local.EXPECT().SetProjectsInCategory(gomock.Any(), domain.CategoryPower, both).Return(nil)

	got, err := f.repo.GetProjectsByCategory(ctx, false, domain.CategoryPower)
	require.NoError(t, err)
	assert.Equal(t, both, got)
}

func TestProjectRepository_ForceFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)
	f.populate(t, catalog)

	errBoom := errors.New("backend down")
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(nil, errBoom)

	_, err := f.repo.GetProjects(ctx, true)
	assert.Equal(t, errBoom, err, "forced failures are returned unmodified")

	for _, c := range domain.Categories() {
		assert.False(t, statusOf(f.repo, c).Dirty)
	}
	cached, err := f.repo.GetProjects(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{pPower, pSoft, pTelecom}, cached)
}

func TestProjectRepository_ForceBypassesCache(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)
	f.populate(t, catalog)

	renamed := domain.MustProject(domain.ProjectAttrs{ID: "p1", Name: "Renamed", Category: domain.CategoryPower})
	updated := []domain.Project{renamed, pSoft, pTelecom}
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(updated, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), updated).Return(nil)

	got, err := f.repo.GetProjects(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	p, err := f.repo.GetProject(ctx, "p1", false)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name())
}

func TestProjectRepository_ClearCategoryIsImmediate(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)
	f.populate(t, catalog)

	f.local.EXPECT().ClearProjectsInCategory(gomock.Any(), domain.CategoryPower).
		DoAndReturn(func(ctx context.Context, c domain.Category) error {
			// The cache is already purged while the local delete runs.
			assert.Zero(t, statusOf(f.repo, domain.CategoryPower).Cached)
			return nil
		})

	require.NoError(t, f.repo.ClearProjectsInCategory(ctx, domain.CategoryPower))

	power := statusOf(f.repo, domain.CategoryPower)
	assert.True(t, power.Dirty)
	assert.Zero(t, power.Cached)

	// Other categories keep their cache and validity.
	telecom := statusOf(f.repo, domain.CategoryTelecom)
	assert.False(t, telecom.Dirty)
	assert.Equal(t, 1, telecom.Cached)

	got, err := f.repo.GetProjectsByCategory(ctx, false, domain.CategoryTelecom)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{pTelecom}, got)
}

func TestProjectRepository_WritesInvalidate(t *testing.T) {
	movedTelecom := proj("t1", domain.CategoryPower)

	tests := []struct {
		name     string
		expect   func(f *projectFixture)
		write    func(ctx context.Context, r *ProjectRepository) error
		dirty    []domain.Category
		emptyAll bool
	}{
		{
			name: "insert one",
			expect: func(f *projectFixture) {
				f.local.EXPECT().InsertProject(gomock.Any(), pPower2).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.InsertProject(ctx, pPower2)
			},
			dirty: []domain.Category{domain.CategoryPower},
		},
		{
			name: "insert one that changes category",
			expect: func(f *projectFixture) {
				f.local.EXPECT().InsertProject(gomock.Any(), movedTelecom).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.InsertProject(ctx, movedTelecom)
			},
			dirty: []domain.Category{domain.CategoryPower, domain.CategoryTelecom},
		},
		{
			name: "insert many",
			expect: func(f *projectFixture) {
				f.local.EXPECT().InsertProjects(gomock.Any(), []domain.Project{pPower2}).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.InsertProjects(ctx, []domain.Project{pPower2})
			},
			dirty: domain.Categories(),
		},
		{
			name: "set all",
			expect: func(f *projectFixture) {
				f.local.EXPECT().SetProjects(gomock.Any(), []domain.Project{pSoft}).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.SetProjects(ctx, []domain.Project{pSoft})
			},
			dirty: domain.Categories(),
		},
		{
			name: "set category",
			expect: func(f *projectFixture) {
				f.local.EXPECT().SetProjectsInCategory(gomock.Any(), domain.CategoryPower, []domain.Project{pPower2}).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.SetProjectsInCategory(ctx, domain.CategoryPower, []domain.Project{pPower2})
			},
			dirty: []domain.Category{domain.CategoryPower},
		},
		{
			name: "set category moving a cached project",
			expect: func(f *projectFixture) {
				f.local.EXPECT().SetProjectsInCategory(gomock.Any(), domain.CategoryPower, []domain.Project{movedTelecom}).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.SetProjectsInCategory(ctx, domain.CategoryPower, []domain.Project{movedTelecom})
			},
			dirty: []domain.Category{domain.CategoryPower, domain.CategoryTelecom},
		},
		{
			name: "clear all",
			expect: func(f *projectFixture) {
				f.local.EXPECT().ClearProjects(gomock.Any()).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.ClearProjects(ctx)
			},
			dirty:    domain.Categories(),
			emptyAll: true,
		},
		{
			name: "clear category",
			expect: func(f *projectFixture) {
				f.local.EXPECT().ClearProjectsInCategory(gomock.Any(), domain.CategoryTelecom).Return(nil)
			},
			write: func(ctx context.Context, r *ProjectRepository) error {
				return r.ClearProjectsInCategory(ctx, domain.CategoryTelecom)
			},
			dirty: []domain.Category{domain.CategoryTelecom},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProjectFixture(t, nil)
			f.populate(t, catalog)

			tt.expect(f)
			require.NoError(t, tt.write(context.Background(), f.repo))

			for _, c := range domain.Categories() {
				want := false
				for _, d := range tt.dirty {
					if d == c {
						want = true
					}
				}
				assert.Equal(t, want, statusOf(f.repo, c).Dirty, "category %s", c)
			}
			if tt.emptyAll {
				for _, s := range f.repo.Status() {
					assert.Zero(t, s.Cached)
				}
			}
		})
	}
}

func TestProjectRepository_WriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)
	f.populate(t, catalog)

	errDisk := errors.New("disk full")
	f.local.EXPECT().InsertProject(gomock.Any(), pPower2).Return(errDisk)

	err := f.repo.InsertProject(ctx, pPower2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errDisk)
	assert.True(t, statusOf(f.repo, domain.CategoryPower).Dirty, "failed writes still invalidate")
}

func TestProjectRepository_SetCategoryRejectsForeignProjects(t *testing.T) {
	f := newProjectFixture(t, nil)

	err := f.repo.SetProjectsInCategory(context.Background(), domain.CategoryPower, []domain.Project{pPower, pTelecom})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.repo.SetProjectsInCategory(context.Background(), domain.Category(42), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestProjectRepository_BothEmpty(t *testing.T) {
	f := newProjectFixture(t, nil)

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return([]domain.Project{}, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), []domain.Project{}).Return(nil)

	got, err := f.repo.GetProjects(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.False(t, statusOf(f.repo, domain.CategoryPower).Dirty, "a successful empty remote is authoritative")
}

func TestProjectRepository_RemoteErrorLocalEmpty(t *testing.T) {
	f := newProjectFixture(t, nil)

	f.local.EXPECT().GetProjectsByCategory(gomock.Any(), false, domain.CategoryPower).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjectsByCategory(gomock.Any(), true, domain.CategoryPower).Return(nil, errors.New("offline"))

	got, err := f.repo.GetProjectsByCategory(context.Background(), false, domain.CategoryPower)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, statusOf(f.repo, domain.CategoryPower).Dirty)
}

func TestProjectRepository_LocalErrorRemoteWins(t *testing.T) {
	f := newProjectFixture(t, nil)

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return(nil, errors.New("corrupt db"))
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(catalog, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil)

	got, err := f.repo.GetProjects(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, catalog, got)
}

func TestProjectRepository_BothFail(t *testing.T) {
	f := newProjectFixture(t, nil)

	errLocal := errors.New("corrupt db")
	errRemote := errors.New("offline")
	f.local.EXPECT().GetProjects(gomock.Any(), false).Return(nil, errLocal)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(nil, errRemote)

	_, err := f.repo.GetProjects(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.ErrorIs(t, err, errLocal)
	assert.ErrorIs(t, err, errRemote)
}

func TestProjectRepository_WriteThroughFailureDoesNotFailRead(t *testing.T) {
	f := newProjectFixture(t, nil)

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(catalog, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(errors.New("read-only fs"))

	got, err := f.repo.GetProjects(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, catalog, got)
	assert.False(t, statusOf(f.repo, domain.CategoryPower).Dirty)
}

func TestProjectRepository_GetProject(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)

	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(catalog, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil)
	_, err := f.repo.GetProjects(ctx, true)
	require.NoError(t, err)

	// Served from the cache: no further source calls are expected.
	got, err := f.repo.GetProject(ctx, "t1", false)
	require.NoError(t, err)
	assert.True(t, got.Equal(pTelecom))

	_, err = f.repo.GetProject(ctx, "missing", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_LocalWinsThenCachesLateRemote(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)

	release := make(chan struct{})
	fresh := []domain.Project{pPower, pPower2, pSoft, pTelecom}

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{pPower}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			<-release
			return fresh, nil
		})
	f.local.EXPECT().SetProjects(gomock.Any(), fresh).Return(nil)

	got, err := f.repo.GetProjects(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{pPower}, got, "local result is returned without waiting for remote")

	close(release)
	f.repo.Wait()

	cached, err := f.repo.GetProjects(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{pPower, pPower2, pSoft, pTelecom}, cached)
}

func TestProjectRepository_RemoteWinCancelsLocal(t *testing.T) {
	f := newProjectFixture(t, nil)

	cancelled := make(chan struct{})
	f.local.EXPECT().GetProjects(gomock.Any(), false).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		})
	f.remote.EXPECT().GetProjects(gomock.Any(), true).Return(catalog, nil)
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil)

	got, err := f.repo.GetProjects(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, catalog, got)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("local fetch was not cancelled")
	}
}

func TestProjectRepository_WriteDuringReadKeepsCategoryDirty(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			close(started)
			<-release
			return catalog, nil
		})
	// No SetProjects: the result predates the insert and must not reach the store.
	f.local.EXPECT().InsertProject(gomock.Any(), pPower2).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.repo.GetProjects(ctx, false)
		done <- err
	}()

	<-started
	require.NoError(t, f.repo.InsertProject(ctx, pPower2))
	close(release)
	require.NoError(t, <-done)

	assert.True(t, statusOf(f.repo, domain.CategoryPower).Dirty, "the insert must not be hidden by the older read")
	assert.False(t, statusOf(f.repo, domain.CategoryTelecom).Dirty)
}

func TestProjectRepository_CallerCancellation(t *testing.T) {
	f := newProjectFixture(t, nil)

	block := func(ctx context.Context, force bool) ([]domain.Project, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.local.EXPECT().GetProjects(gomock.Any(), false).DoAndReturn(block)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).DoAndReturn(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.repo.GetProjects(ctx, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	f.repo.Wait()
	assert.True(t, statusOf(f.repo, domain.CategoryPower).Dirty)
}

func TestProjectRepository_WithoutCoalescingEveryReadFetches(t *testing.T) {
	f := newProjectFixture(t, DefaultConfig())

	const readers = 3
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(readers)

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil).Times(readers)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			started.Done()
			<-release
			return catalog, nil
		}).Times(readers)
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil).Times(readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.repo.GetProjects(context.Background(), false)
			assert.NoError(t, err)
		}()
	}

	started.Wait()
	close(release)
	wg.Wait()
}

func TestProjectRepository_CoalescedReadsShareOneFetch(t *testing.T) {
	f := newProjectFixture(t, &Config{CoalesceReads: true})

	const readers = 5
	release := make(chan struct{})

	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			<-release
			return catalog, nil
		})
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil)

	results := make([][]domain.Project, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.repo.GetProjects(context.Background(), false)
			assert.NoError(t, err)
			results[i] = got
		}()
	}

	// Give every reader time to join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	results[0][0] = pPower2
	for _, r := range results[1:] {
		assert.Equal(t, catalog, r, "callers must not share a backing array")
	}
}

func TestProjectRepository_DispatchesCacheEvents(t *testing.T) {
	ctx := context.Background()
	metrics := event.NewMetricsHandler()
	dispatcher := event.NewInMemoryDispatcher(false, nil)
	dispatcher.Subscribe(metrics)

	f := newProjectFixture(t, &Config{Dispatcher: dispatcher})
	f.populate(t, catalog)

	f.local.EXPECT().InsertProject(gomock.Any(), pPower2).Return(nil)
	require.NoError(t, f.repo.InsertProject(ctx, pPower2))

	m := metrics.GetMetrics()
	assert.EqualValues(t, 1, m["refreshes_remote"])
	assert.EqualValues(t, 1, m["invalidations"])
}

func projectIDs(projects []domain.Project) []string {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID()
	}
	return ids
}

func TestProjectRepository_LateRemoteKeepsLocalWrite(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "showcase.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.InsertProject(ctx, pPower))

	remote := mocks.NewMockProjectSource(ctrl)
	release := make(chan struct{})
	remote.EXPECT().GetProjectsByCategory(gomock.Any(), true, domain.CategoryPower).
		DoAndReturn(func(ctx context.Context, force bool, c domain.Category) ([]domain.Project, error) {
			<-release
			return []domain.Project{pPower}, nil
		})

	repo := NewProjectRepository(nil, store, remote, zap.NewNop())
	t.Cleanup(repo.Wait)

	got, err := repo.GetProjectsByCategory(ctx, false, domain.CategoryPower)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, projectIDs(got), "local wins while the remote is blocked")

	require.NoError(t, repo.InsertProject(ctx, pPower2))
	close(release)
	repo.Wait()

	stored, err := store.GetProjectsByCategory(ctx, false, domain.CategoryPower)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, projectIDs(stored))
	assert.True(t, statusOf(repo, domain.CategoryPower).Dirty)
}

func TestProjectRepository_CoalescedReadSurvivesSharerCancellation(t *testing.T) {
	f := newProjectFixture(t, &Config{CoalesceReads: true})

	started := make(chan struct{})
	release := make(chan struct{})
	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			close(started)
			select {
			case <-release:
				return catalog, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := f.repo.GetProjects(leaderCtx, false)
		leaderErr <- err
	}()
	<-started

	type result struct {
		projects []domain.Project
		err      error
	}
	follower := make(chan result, 1)
	go func() {
		got, err := f.repo.GetProjects(context.Background(), false)
		follower <- result{got, err}
	}()

	// Let the second reader join the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	res := <-follower
	require.NoError(t, res.err)
	assert.Len(t, res.projects, len(catalog))

	f.repo.Wait()
	assert.False(t, statusOf(f.repo, domain.CategoryPower).Dirty)
}

func TestProjectRepository_CloseWaitsForLateRemote(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t, nil)

	release := make(chan struct{})
	f.local.EXPECT().GetProjects(gomock.Any(), false).Return([]domain.Project{pPower}, nil)
	f.remote.EXPECT().GetProjects(gomock.Any(), true).
		DoAndReturn(func(ctx context.Context, force bool) ([]domain.Project, error) {
			<-release
			return catalog, nil
		})
	f.local.EXPECT().SetProjects(gomock.Any(), catalog).Return(nil)

	_, err := f.repo.GetProjects(ctx, false)
	require.NoError(t, err)

	closed := make(chan struct{})
	go func() {
		f.repo.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned before the late remote result settled")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-closed

	_, err = f.repo.GetProjects(ctx, true)
	assert.ErrorIs(t, err, ErrClosed)

	got, err := f.repo.GetProjects(ctx, false)
	require.NoError(t, err, "cached reads keep working after Close")
	assert.Len(t, got, len(catalog))
}
