package clientstate

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/model/persona"
	"github.com/nilgpt/nilgpt/backend/internal/model/theme"
	"github.com/nilgpt/nilgpt/backend/internal/model/utm"
)

const client = "client-1"

func newTestStore() (*Store, *MemoryStorage, *MemoryStorage) {
	session := NewMemoryStorage(time.Hour)
	local := NewMemoryStorage(0)
	return NewStore(session, local, utm.DefaultMapping(), persona.NewMemoryStore(persona.Seed())), session, local
}

func TestInit_Defaults(t *testing.T) {
	req := require.New(t)
	store, _, _ := newTestStore()

	st, err := store.Init(context.Background(), client)
	req.NoError(err)
	req.Equal(State{
		ClientID:     client,
		Theme:        theme.Light,
		Palette:      theme.PaletteLight,
		PaletteClass: "theme-light",
		Persona:      persona.DefaultID,
	}, st)
}

func TestInit_MigratesLegacyTheme(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, session, local := newTestStore()
	req.NoError(local.Set(ctx, client, localLegacyTheme, "dark"))

	st, err := store.Init(ctx, client)
	req.NoError(err)
	req.Equal(theme.Dark, st.Theme)
	req.True(st.Dark)

	_, ok, _ := local.Get(ctx, client, localLegacyTheme)
	req.False(ok)
	v, _, _ := session.Get(ctx, client, sessionTheme)
	req.Equal("dark", v)
}

func TestInit_SessionThemeWinsOverLegacy(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, session, local := newTestStore()
	req.NoError(local.Set(ctx, client, localLegacyTheme, "dark"))
	req.NoError(session.Set(ctx, client, sessionTheme, "light"))

	st, err := store.Init(ctx, client)
	req.NoError(err)
	req.Equal(theme.Light, st.Theme)
	_, ok, _ := local.Get(ctx, client, localLegacyTheme)
	req.False(ok)
}

func TestEnterLanding_Nilia(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, _, _ := newTestStore()

	// Nilia outranks the campaign mapping.
	st, err := store.EnterLanding(ctx, client, EntryNilia, url.Values{"utm_campaign": {"study"}})
	req.NoError(err)
	req.True(st.Nilia)
	req.True(st.NiliaUser)
	req.Equal(persona.NiliaID, st.Persona)
	req.Equal(theme.Dark, st.Theme)
	req.Equal(utm.Params{utm.Campaign: "study"}, st.UTM)
}

func TestEnterLanding_CampaignPersona(t *testing.T) {
	req := require.New(t)
	store, _, _ := newTestStore()

	st, err := store.EnterLanding(context.Background(), client, "", url.Values{"utm_campaign": {"Study"}, "utm_source": {"x"}})
	req.NoError(err)
	req.False(st.Nilia)
	req.Equal("learning-coach", st.Persona)
}

func TestSelectPersona(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, _, _ := newTestStore()

	st, err := store.SelectPersona(ctx, client, "companion")
	req.NoError(err)
	req.Equal("companion", st.Persona)

	// A stored choice survives re-initialisation without a campaign.
	st, err = store.Init(ctx, client)
	req.NoError(err)
	req.Equal("companion", st.Persona)

	_, err = store.SelectPersona(ctx, client, "socrates")
	req.ErrorIs(err, errs.ErrInvalidInput)
}

func TestSetThemeAndPalette(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, _, _ := newTestStore()

	st, err := store.SetPalette(ctx, client, "dark-sepia")
	req.NoError(err)
	req.Equal("theme-dark-sepia", st.PaletteClass)
	req.True(st.Dark)
	req.Equal(theme.Light, st.Theme)

	st, err = store.SetTheme(ctx, client, "dark")
	req.NoError(err)
	req.Equal(theme.Dark, st.Theme)

	_, err = store.SetTheme(ctx, client, "blue")
	req.ErrorIs(err, errs.ErrInvalidInput)
	_, err = store.SetPalette(ctx, client, "neon")
	req.ErrorIs(err, errs.ErrInvalidInput)
}

func TestRestoreFromProfile(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, _, _ := newTestStore()
	profile := utm.Params{utm.Content: utm.NiliaContent}

	st, reload, err := store.RestoreFromProfile(ctx, client, profile)
	req.NoError(err)
	req.True(reload)
	req.True(st.Nilia)
	req.Equal(persona.NiliaID, st.Persona)

	_, reload, err = store.RestoreFromProfile(ctx, client, profile)
	req.NoError(err)
	req.False(reload)

	_, reload, err = store.RestoreFromProfile(ctx, "client-2", utm.Params{utm.Source: "x"})
	req.NoError(err)
	req.False(reload)
}

func TestTeardownKeepsLocalTier(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store, _, _ := newTestStore()

	_, err := store.EnterLanding(ctx, client, EntryNilia, nil)
	req.NoError(err)
	_, err = store.SetPalette(ctx, client, "dark-blue")
	req.NoError(err)

	req.NoError(store.Teardown(ctx, client))

	st, err := store.State(ctx, client)
	req.NoError(err)
	req.False(st.Nilia)
	req.True(st.NiliaUser)
	req.Equal(theme.PaletteDarkBlue, st.Palette)
	req.Equal(persona.DefaultID, st.Persona)
	req.Equal(theme.Light, st.Theme)
}

func TestMemoryStorage_Expiry(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStorage(time.Minute)
	s.now = func() time.Time { return now }

	req.NoError(s.Set(ctx, client, "k", "v"))
	v, ok, err := s.Get(ctx, client, "k")
	req.NoError(err)
	req.True(ok)
	req.Equal("v", v)

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Get(ctx, client, "k")
	req.False(ok)

	req.NoError(s.Set(ctx, "other", "k", "v"))
	now = now.Add(2 * time.Minute)
	req.Equal(1, s.Sweep())
}

// Runs against a real server when NILGPT_TEST_REDIS_ADDR is set.
func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("NILGPT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("NILGPT_TEST_REDIS_ADDR not set")
	}
	req := require.New(t)
	ctx := context.Background()

	cli, err := NewRedisClient(RedisOptions{Addr: addr})
	req.NoError(err)
	t.Cleanup(func() { _ = cli.Close() })
	req.NoError(cli.Ping(ctx).Err())

	s := NewRedisStorage(cli, "nilgpt:test:"+uuid.NewString(), time.Minute)
	req.NoError(s.Set(ctx, client, "palette", "dark-blue"))

	v, ok, err := s.Get(ctx, client, "palette")
	req.NoError(err)
	req.True(ok)
	req.Equal("dark-blue", v)

	req.NoError(s.Delete(ctx, client, "palette"))
	_, ok, err = s.Get(ctx, client, "palette")
	req.NoError(err)
	req.False(ok)

	req.NoError(s.Set(ctx, client, "a", "1"))
	req.NoError(s.Clear(ctx, client))
	_, ok, _ = s.Get(ctx, client, "a")
	req.False(ok)
}
