// Package clientstate holds the browser-facing preferences (theme, palette,
// Nilia entry, persona, UTM capture) in two tiers: a session tier that ends
// with Teardown or expiry, and a local tier that survives sign-out.
package clientstate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/nilgpt/nilgpt/backend/internal/errs"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/model/persona"
	"github.com/nilgpt/nilgpt/backend/internal/model/theme"
	"github.com/nilgpt/nilgpt/backend/internal/model/utm"
)

// Storage keys, named after the browser storage keys they replace.
const (
	sessionTheme   = "theme"
	sessionNilia   = "nilia"
	sessionUTM     = "utm_params"
	sessionPersona = "selected_persona"

	localLegacyTheme = "theme"
	localPalette     = "nilgpt-theme"
	localNiliaUser   = "nilia_user"
)

// EntryNilia is the landing entry point that switches on Nilia mode.
const EntryNilia = "nilia"

// State is the resolved view returned to the client.
type State struct {
	ClientID     string        `json:"clientId"`
	Theme        theme.Mode    `json:"theme"`
	Palette      theme.Palette `json:"palette"`
	PaletteClass string        `json:"paletteClass"`
	Dark         bool          `json:"dark"`
	Nilia        bool          `json:"nilia"`
	NiliaUser    bool          `json:"niliaUser"`
	Persona      string        `json:"persona"`
	UTM          utm.Params    `json:"utm,omitempty"`
}

// PersonaCatalogue is the subset of the persona store the state needs.
type PersonaCatalogue interface {
	FindByID(id string) (persona.Persona, bool)
}

// Store is the client state store. Init must run before other calls for a
// client; Teardown ends its session tier.
type Store struct {
	session  Storage
	local    Storage
	mapping  *utm.Mapping
	personas PersonaCatalogue
}

func NewStore(session, local Storage, mapping *utm.Mapping, personas PersonaCatalogue) *Store {
	return &Store{session: session, local: local, mapping: mapping, personas: personas}
}

// Init migrates legacy storage and resolves the starting persona.
func (s *Store) Init(ctx context.Context, clientID string) (State, error) {
	if err := s.migrateLegacyTheme(ctx, clientID); err != nil {
		return State{}, err
	}
	if err := s.applyStartupPersona(ctx, clientID); err != nil {
		return State{}, err
	}
	return s.State(ctx, clientID)
}

// migrateLegacyTheme moves a mode left in the local tier into the session tier.
func (s *Store) migrateLegacyTheme(ctx context.Context, clientID string) error {
	legacy, ok, err := s.local.Get(ctx, clientID, localLegacyTheme)
	if err != nil || !ok {
		return err
	}
	_, hasSession, err := s.session.Get(ctx, clientID, sessionTheme)
	if err != nil {
		return err
	}
	if mode, perr := theme.ParseMode(legacy); !hasSession && perr == nil {
		if err := s.session.Set(ctx, clientID, sessionTheme, string(mode)); err != nil {
			return err
		}
	}
	logging.FromContext(ctx).Debug("migrated legacy theme", slog.String("theme", legacy))
	return s.local.Delete(ctx, clientID, localLegacyTheme)
}

// applyStartupPersona picks the persona in priority order: Nilia mode, the
// UTM campaign mapping, the stored selection, then the default.
func (s *Store) applyStartupPersona(ctx context.Context, clientID string) error {
	nilia, err := s.flag(ctx, s.session, clientID, sessionNilia)
	if err != nil {
		return err
	}
	if nilia {
		if err := s.session.Set(ctx, clientID, sessionTheme, string(theme.Dark)); err != nil {
			return err
		}
		return s.session.Set(ctx, clientID, sessionPersona, persona.NiliaID)
	}

	params, err := s.utmParams(ctx, clientID)
	if err != nil {
		return err
	}
	if id, ok := s.mapping.PersonaFor(params); ok && s.known(id) {
		return s.session.Set(ctx, clientID, sessionPersona, id)
	}

	if stored, ok, err := s.session.Get(ctx, clientID, sessionPersona); err != nil || (ok && s.known(stored)) {
		return err
	}
	return s.session.Set(ctx, clientID, sessionPersona, persona.DefaultID)
}

// EnterLanding records a landing page visit. Entry "nilia" switches Nilia
// mode on for the session and marks the browser as a Nilia user.
func (s *Store) EnterLanding(ctx context.Context, clientID, entry string, query url.Values) (State, error) {
	if params := utm.Capture(query); !params.Empty() {
		raw, err := json.Marshal(params)
		if err != nil {
			return State{}, err
		}
		if err := s.session.Set(ctx, clientID, sessionUTM, string(raw)); err != nil {
			return State{}, err
		}
	}

	if entry == EntryNilia {
		if err := s.session.Set(ctx, clientID, sessionNilia, "true"); err != nil {
			return State{}, err
		}
		if err := s.local.Set(ctx, clientID, localNiliaUser, "true"); err != nil {
			return State{}, err
		}
	}

	if err := s.applyStartupPersona(ctx, clientID); err != nil {
		return State{}, err
	}
	return s.State(ctx, clientID)
}

// SetTheme stores the light/dark mode for the session.
func (s *Store) SetTheme(ctx context.Context, clientID string, raw string) (State, error) {
	mode, err := theme.ParseMode(raw)
	if err != nil {
		return State{}, err
	}
	if err := s.session.Set(ctx, clientID, sessionTheme, string(mode)); err != nil {
		return State{}, err
	}
	return s.State(ctx, clientID)
}

// SetPalette persists the palette in the local tier.
func (s *Store) SetPalette(ctx context.Context, clientID string, raw string) (State, error) {
	p, err := theme.ParsePalette(raw)
	if err != nil {
		return State{}, err
	}
	if err := s.local.Set(ctx, clientID, localPalette, string(p)); err != nil {
		return State{}, err
	}
	return s.State(ctx, clientID)
}

// SelectPersona records an explicit persona choice.
func (s *Store) SelectPersona(ctx context.Context, clientID, id string) (State, error) {
	if !s.known(id) {
		return State{}, fmt.Errorf("unknown persona %q: %w", id, errs.ErrInvalidInput)
	}
	if err := s.session.Set(ctx, clientID, sessionPersona, id); err != nil {
		return State{}, err
	}
	return s.State(ctx, clientID)
}

// RestoreFromProfile switches Nilia mode on for users who signed up through
// Nilia but arrived without the session flag. reload is true only when the
// flag was newly set, so a client reloading on it settles after one pass.
func (s *Store) RestoreFromProfile(ctx context.Context, clientID string, profile utm.Params) (st State, reload bool, err error) {
	if profile.IsNilia() {
		nilia, err := s.flag(ctx, s.session, clientID, sessionNilia)
		if err != nil {
			return State{}, false, err
		}
		if !nilia {
			if err := s.session.Set(ctx, clientID, sessionNilia, "true"); err != nil {
				return State{}, false, err
			}
			if err := s.applyStartupPersona(ctx, clientID); err != nil {
				return State{}, false, err
			}
			reload = true
		}
	}
	st, err = s.State(ctx, clientID)
	return st, reload, err
}

// RestoreNilia is RestoreFromProfile without the resolved state.
func (s *Store) RestoreNilia(ctx context.Context, clientID string, profile utm.Params) (bool, error) {
	_, reload, err := s.RestoreFromProfile(ctx, clientID, profile)
	return reload, err
}

// Teardown ends the client's session tier. Local preferences survive.
func (s *Store) Teardown(ctx context.Context, clientID string) error {
	return s.session.Clear(ctx, clientID)
}

// State resolves the stored values, applying defaults for anything missing
// or invalid.
func (s *Store) State(ctx context.Context, clientID string) (State, error) {
	st := State{ClientID: clientID, Theme: theme.DefaultMode, Palette: theme.DefaultPalette, Persona: persona.DefaultID}

	if raw, ok, err := s.session.Get(ctx, clientID, sessionTheme); err != nil {
		return State{}, err
	} else if mode, perr := theme.ParseMode(raw); ok && perr == nil {
		st.Theme = mode
	}

	if raw, ok, err := s.local.Get(ctx, clientID, localPalette); err != nil {
		return State{}, err
	} else if p, perr := theme.ParsePalette(raw); ok && perr == nil {
		st.Palette = p
	}

	var err error
	if st.Nilia, err = s.flag(ctx, s.session, clientID, sessionNilia); err != nil {
		return State{}, err
	}
	if st.NiliaUser, err = s.flag(ctx, s.local, clientID, localNiliaUser); err != nil {
		return State{}, err
	}
	if st.UTM, err = s.utmParams(ctx, clientID); err != nil {
		return State{}, err
	}
	if id, ok, err := s.session.Get(ctx, clientID, sessionPersona); err != nil {
		return State{}, err
	} else if ok && s.known(id) {
		st.Persona = id
	}

	st.PaletteClass = st.Palette.Class()
	st.Dark = st.Theme == theme.Dark || st.Palette.IsDark()
	if st.UTM.Empty() {
		st.UTM = nil
	}
	return st, nil
}

func (s *Store) flag(ctx context.Context, tier Storage, clientID, key string) (bool, error) {
	v, ok, err := tier.Get(ctx, clientID, key)
	return ok && v == "true", err
}

func (s *Store) utmParams(ctx context.Context, clientID string) (utm.Params, error) {
	raw, ok, err := s.session.Get(ctx, clientID, sessionUTM)
	if err != nil || !ok {
		return utm.Params{}, err
	}
	var stored map[string]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logging.FromContext(ctx).Warn("discarding unreadable utm params", slog.Any("err", err))
		return utm.Params{}, nil
	}
	return utm.Sanitize(stored), nil
}

func (s *Store) known(id string) bool {
	_, ok := s.personas.FindByID(id)
	return ok
}
