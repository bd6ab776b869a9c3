package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/notify"
	"github.com/vmunix/marquee/internal/store"
	"github.com/vmunix/marquee/internal/store/mocks"
)

func favorite(ref api.MovieRef, id string, at time.Time) api.Favorite {
	return api.Favorite{ID: id, MovieID: ref.MovieID, Title: ref.Title, CreatedAt: at}
}

func watched(ref api.MovieRef, id string, rating *float64, at time.Time) api.WatchedMovie {
	return api.WatchedMovie{ID: id, MovieID: ref.MovieID, Title: ref.Title, Rating: rating, WatchedAt: at}
}

func newLibrary(t *testing.T, h *harness) (*store.LibraryStore, *mocks.MockLibraryAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLibraryAPI(ctrl)
	return store.NewLibraryStore(client, h.deps), client
}

// seedLibrary loads favorites and watched movies through the mock.
func seedLibrary(t *testing.T, s *store.LibraryStore, client *mocks.MockLibraryAPI, favs []api.Favorite, list []api.WatchedMovie) {
	t.Helper()
	client.EXPECT().Favorites(gomock.Any()).Return(favs, nil)
	client.EXPECT().Watched(gomock.Any()).Return(list, nil)
	require.True(t, s.Load(context.Background()).Success)
}

func TestLibrary_LoadSortsAndComputesStats(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)

	seedLibrary(t, s, client,
		[]api.Favorite{
			favorite(fightClub, "f1", t0.Add(-2*time.Hour)),
			favorite(theMatrix, "f2", t0.Add(-time.Hour)),
		},
		[]api.WatchedMovie{
			watched(fightClub, "w1", ptr(8.0), t0.Add(-3*time.Hour)),
			watched(theMatrix, "w2", nil, t0.Add(-time.Hour)),
			watched(spiritedWay, "w3", ptr(10.0), t0.Add(-2*time.Hour)),
		})

	favs := s.Favorites()
	require.Len(t, favs, 2)
	assert.Equal(t, "f2", favs[0].ID, "newest first")

	list := s.Watched()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"w2", "w3", "w1"}, []string{list[0].ID, list[1].ID, list[2].ID})

	assert.Equal(t, store.Stats{TotalFavorites: 2, TotalWatched: 3, RatedCount: 2, AverageRating: 9}, s.Stats())
	assert.True(t, s.IsFavorite(550))
	assert.True(t, s.IsWatched(129))
	assert.False(t, s.IsFavorite(129))
}

func TestLibrary_LoadSignedOut(t *testing.T) {
	h := newHarness(t, false)
	s, _ := newLibrary(t, h)

	r := s.Load(context.Background())

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindAuthRequired, r.Err.Kind)
	assert.Equal(t, []string{"Please sign in to load your library"}, h.messages(notify.KindError))
}

func TestLibrary_ConcurrentLoadFavoritesRunsOnce(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)

	started := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().Favorites(gomock.Any()).
		DoAndReturn(func(context.Context) ([]api.Favorite, error) {
			close(started)
			<-release
			return []api.Favorite{favorite(fightClub, "f1", t0)}, nil
		}).
		Times(1)

	var wg sync.WaitGroup
	results := make([]apicall.Result[[]api.Favorite], 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = s.LoadFavorites(context.Background())
	}()
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = s.LoadFavorites(context.Background())
	}()
	require.Eventually(t, func() bool { return h.dedup.Has("favorites:list") }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		require.True(t, r.Success)
		assert.Len(t, r.Data, 1)
	}
}

func TestLibrary_AddFavorite(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)

	client.EXPECT().AddFavorite(gomock.Any(), fightClub).
		DoAndReturn(func(context.Context, api.MovieRef) (*api.Favorite, error) {
			// The optimistic entry is visible while the request is in flight
			assert.True(t, s.IsFavorite(550))
			assert.True(t, s.IsPending(550))
			assert.Equal(t, 1, s.Stats().TotalFavorites)
			f := favorite(fightClub, "fav-1", t0)
			return &f, nil
		})

	r := s.AddFavorite(context.Background(), fightClub)

	require.True(t, r.Success)
	assert.Equal(t, "fav-1", r.Data.ID)
	favs := s.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, "fav-1", favs[0].ID, "server copy replaces the optimistic one")
	assert.False(t, s.IsPending(550))
	assert.Equal(t, []string{"Added to favorites"}, h.messages(notify.KindSuccess))
}

func TestLibrary_AddFavoriteDuplicateSkipsNetwork(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, []api.Favorite{favorite(fightClub, "f1", t0)}, nil)

	// No AddFavorite expectation: a network call fails the test
	r := s.AddFavorite(context.Background(), fightClub)

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindConflict, r.Err.Kind)
	assert.Equal(t, []string{"Fight Club is already in your favorites"}, h.messages(notify.KindInfo))
	assert.Len(t, s.Favorites(), 1)
}

func TestLibrary_AddFavoriteSignedOut(t *testing.T) {
	h := newHarness(t, false)
	s, _ := newLibrary(t, h)

	r := s.AddFavorite(context.Background(), fightClub)

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindAuthRequired, r.Err.Kind)
	assert.Equal(t, "Please sign in to add to favorites", r.Err.Message)
	assert.Empty(t, s.Favorites())
}

func TestLibrary_AddFavoriteRollsBack(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client,
		[]api.Favorite{favorite(theMatrix, "f1", t0.Add(-time.Hour))},
		[]api.WatchedMovie{watched(theMatrix, "w1", ptr(7.0), t0)})
	before, beforeStats := s.Favorites(), s.Stats()

	client.EXPECT().AddFavorite(gomock.Any(), fightClub).Return(nil, errServer)

	r := s.AddFavorite(context.Background(), fightClub)

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindServerError, r.Err.Kind)
	assert.Equal(t, before, s.Favorites())
	assert.Equal(t, beforeStats, s.Stats())
	assert.Equal(t, []string{apperr.MsgServer}, h.messages(notify.KindError))
}

func TestLibrary_AddFavoriteInProgress(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)

	started := make(chan struct{})
	release := make(chan struct{})
	client.EXPECT().AddFavorite(gomock.Any(), fightClub).
		DoAndReturn(func(context.Context, api.MovieRef) (*api.Favorite, error) {
			close(started)
			<-release
			f := favorite(fightClub, "fav-1", t0)
			return &f, nil
		}).
		Times(1)

	done := make(chan apicall.Result[api.Favorite])
	go func() { done <- s.AddFavorite(context.Background(), fightClub) }()
	<-started

	second := s.RemoveFavorite(context.Background(), 550)
	require.False(t, second.Success)
	assert.Equal(t, store.MsgInProgress, second.Err.Message)

	close(release)
	assert.True(t, (<-done).Success)
}

func TestLibrary_RemoveFavoriteRestoresOrder(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, []api.Favorite{
		favorite(fightClub, "f1", t0.Add(-3*time.Hour)),
		favorite(theMatrix, "f2", t0.Add(-2*time.Hour)),
		favorite(spiritedWay, "f3", t0.Add(-time.Hour)),
	}, nil)
	before := s.Favorites()

	client.EXPECT().RemoveFavorite(gomock.Any(), int64(603)).
		DoAndReturn(func(context.Context, int64) error {
			assert.False(t, s.IsFavorite(603))
			return errNetwork
		})

	r := s.RemoveFavorite(context.Background(), 603)

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindNetworkUnavailable, r.Err.Kind)
	assert.Equal(t, before, s.Favorites())
	assert.Equal(t, 3, s.Stats().TotalFavorites)
}

func TestLibrary_RemoveFavoriteNotFound(t *testing.T) {
	h := newHarness(t, true)
	s, _ := newLibrary(t, h)

	r := s.RemoveFavorite(context.Background(), 550)

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindNotFound, r.Err.Kind)
}

func TestLibrary_WatchedAggregates(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, nil, []api.WatchedMovie{
		watched(theMatrix, "w1", ptr(6.0), t0.Add(-time.Hour)),
		watched(spiritedWay, "w2", nil, t0.Add(-2*time.Hour)),
	})
	before := s.Stats()

	client.EXPECT().AddWatched(gomock.Any(), api.WatchedInput{MovieRef: fightClub, Rating: ptr(10.0)}).
		DoAndReturn(func(_ context.Context, in api.WatchedInput) (*api.WatchedMovie, error) {
			w := watched(fightClub, "w3", in.Rating, t0)
			return &w, nil
		})
	client.EXPECT().RemoveWatched(gomock.Any(), int64(550)).Return(nil)

	added := s.AddWatched(context.Background(), fightClub, ptr(10.0))
	require.True(t, added.Success)
	assert.Equal(t, store.Stats{TotalWatched: 3, RatedCount: 2, AverageRating: 8}, s.Stats())

	removed := s.RemoveWatched(context.Background(), 550)
	require.True(t, removed.Success)
	assert.Equal(t, before, s.Stats())
	assert.Equal(t, 6.0, s.Stats().AverageRating, "average only over remaining rated movies")
}

func TestLibrary_AddWatchedRejectsRating(t *testing.T) {
	h := newHarness(t, true)
	s, _ := newLibrary(t, h)

	r := s.AddWatched(context.Background(), fightClub, ptr(11.0))

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindValidation, r.Err.Kind)
	assert.False(t, s.IsWatched(550))
	assert.Len(t, h.messages(notify.KindError), 1)
}

func TestLibrary_AddWatchedDuplicate(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, nil, []api.WatchedMovie{watched(fightClub, "w1", nil, t0)})

	r := s.AddWatched(context.Background(), fightClub, nil)

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindConflict, r.Err.Kind)
	assert.Equal(t, []string{"Fight Club is already marked as watched"}, h.messages(notify.KindInfo))
}

func TestLibrary_RemoveWatchedRollback(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, nil, []api.WatchedMovie{
		watched(fightClub, "w1", ptr(9.0), t0.Add(-time.Hour)),
		watched(theMatrix, "w2", ptr(5.0), t0),
	})
	before, beforeStats := s.Watched(), s.Stats()

	client.EXPECT().RemoveWatched(gomock.Any(), int64(603)).Return(errServer)

	r := s.RemoveWatched(context.Background(), 603)

	require.False(t, r.Success)
	assert.Equal(t, before, s.Watched())
	assert.Equal(t, beforeStats, s.Stats())
}

func TestLibrary_RateWatched(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, nil, []api.WatchedMovie{watched(fightClub, "w1", ptr(4.0), t0)})

	client.EXPECT().RateWatched(gomock.Any(), int64(550), ptr(9.0)).
		DoAndReturn(func(_ context.Context, _ int64, rating *float64) (*api.WatchedMovie, error) {
			w := watched(fightClub, "w1", rating, t0)
			return &w, nil
		})

	r := s.RateWatched(context.Background(), 550, ptr(9.0))

	require.True(t, r.Success)
	assert.Equal(t, 9.0, s.Stats().AverageRating)
	assert.Equal(t, []string{"Rating saved"}, h.messages(notify.KindSuccess))
}

func TestLibrary_RateWatchedRollback(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, nil, []api.WatchedMovie{watched(fightClub, "w1", ptr(4.0), t0)})
	before, beforeStats := s.Watched(), s.Stats()

	client.EXPECT().RateWatched(gomock.Any(), int64(550), gomock.Nil()).Return(nil, errServer)

	r := s.RateWatched(context.Background(), 550, nil)

	require.False(t, r.Success)
	assert.Equal(t, before, s.Watched())
	assert.Equal(t, beforeStats, s.Stats())
}

func TestLibrary_Filter(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client,
		[]api.Favorite{
			favorite(fightClub, "f1", t0),
			favorite(theMatrix, "f2", t0.Add(-time.Hour)),
			favorite(spiritedWay, "f3", t0.Add(-2*time.Hour)),
		},
		[]api.WatchedMovie{watched(spiritedWay, "w1", nil, t0)})

	got := s.FilterFavorites("matrix")
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)

	assert.Len(t, s.FilterFavorites(""), 3, "empty query keeps everything")
	assert.Empty(t, s.FilterFavorites("zzz"))

	w := s.FilterWatched("SPIRITED")
	require.Len(t, w, 1)
	assert.Equal(t, "w1", w[0].ID)
}

func TestLibrary_Reset(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, []api.Favorite{favorite(fightClub, "f1", t0)}, nil)

	s.Reset()

	assert.Empty(t, s.Favorites())
	assert.Equal(t, store.Stats{}, s.Stats())
}

func TestLibrary_RemoveFavoriteFailsAfterReload(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, []api.Favorite{favorite(fightClub, "f1", t0)}, nil)

	g := newGate()
	client.EXPECT().RemoveFavorite(gomock.Any(), int64(550)).
		DoAndReturn(func(context.Context, int64) error {
			g.enter()
			return errServer
		})
	client.EXPECT().Favorites(gomock.Any()).Return([]api.Favorite{favorite(fightClub, "f1", t0)}, nil)

	var r apicall.Result[struct{}]
	finish := g.run(func() { r = s.RemoveFavorite(context.Background(), 550) })
	require.True(t, s.LoadFavorites(context.Background()).Success)
	finish()

	require.False(t, r.Success)
	assert.Len(t, s.Favorites(), 1, "one favorite per movie")
	assert.Equal(t, 1, s.Stats().TotalFavorites)
}

func TestLibrary_RemoveWatchedFailsAfterReload(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, nil, []api.WatchedMovie{watched(theMatrix, "w1", ptr(7.0), t0)})

	g := newGate()
	client.EXPECT().RemoveWatched(gomock.Any(), int64(603)).
		DoAndReturn(func(context.Context, int64) error {
			g.enter()
			return errServer
		})
	client.EXPECT().Watched(gomock.Any()).Return([]api.WatchedMovie{watched(theMatrix, "w1", ptr(7.0), t0)}, nil)

	var r apicall.Result[struct{}]
	finish := g.run(func() { r = s.RemoveWatched(context.Background(), 603) })
	require.True(t, s.LoadWatched(context.Background()).Success)
	finish()

	require.False(t, r.Success)
	assert.Len(t, s.Watched(), 1)
	assert.Equal(t, store.Stats{TotalWatched: 1, RatedCount: 1, AverageRating: 7}, s.Stats())
}

func TestLibrary_ResetDropsInFlightLoad(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)

	g := newGate()
	client.EXPECT().Favorites(gomock.Any()).
		DoAndReturn(func(context.Context) ([]api.Favorite, error) {
			g.enter()
			return []api.Favorite{favorite(fightClub, "f1", t0)}, nil
		})

	var r apicall.Result[[]api.Favorite]
	finish := g.run(func() { r = s.LoadFavorites(context.Background()) })
	s.Reset()
	finish()

	assert.True(t, r.Success, "the caller still gets its response")
	assert.Empty(t, s.Favorites())
	assert.Equal(t, store.Stats{}, s.Stats())
	assert.False(t, s.Loading(store.FieldFavorites))
}

func TestLibrary_ResetDuringRemoveIsNotRestored(t *testing.T) {
	h := newHarness(t, true)
	s, client := newLibrary(t, h)
	seedLibrary(t, s, client, []api.Favorite{favorite(fightClub, "f1", t0)}, nil)

	g := newGate()
	client.EXPECT().RemoveFavorite(gomock.Any(), int64(550)).
		DoAndReturn(func(context.Context, int64) error {
			g.enter()
			return errServer
		})

	var r apicall.Result[struct{}]
	finish := g.run(func() { r = s.RemoveFavorite(context.Background(), 550) })
	s.Reset()
	finish()

	require.False(t, r.Success)
	assert.Equal(t, apperr.KindServerError, r.Err.Kind)
	assert.Empty(t, s.Favorites())
	assert.False(t, s.IsPending(550))
	assert.Empty(t, h.messages(notify.KindError), "failures from before the reset are not shown")
}
