package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

// ProfileVersion is the current profile schema version.
const ProfileVersion = 3

// LeaderboardSize is the number of named entries kept in the profile.
const LeaderboardSize = 5

const profileKey = "profile.v3"

// ErrMalformedProfile is wrapped when a stored or imported profile cannot
// be decoded. The accompanying profile holds defaults.
var ErrMalformedProfile = errors.New("malformed profile")

// Settings are the player preferences.
type Settings struct {
	Sound       bool   `msgpack:"sound" json:"sound"`
	Music       bool   `msgpack:"music" json:"music"`
	Haptics     bool   `msgpack:"haptics" json:"haptics"`
	Theme       string `msgpack:"theme" json:"theme"` // auto, day, night
	Spice       string `msgpack:"spice" json:"spice"` // mild, spicy
	AltControls bool   `msgpack:"alt_controls" json:"altControls"`
}

// LeaderboardEntry is one named high score.
type LeaderboardEntry struct {
	Name  string `msgpack:"name" json:"name"`
	Score int    `msgpack:"score" json:"score"`
	Date  string `msgpack:"date" json:"date"`
}

// GameData holds records and unlocks.
type GameData struct {
	HighScore    int                `msgpack:"high_score" json:"highScore"`
	BestSpeed    int                `msgpack:"best_speed" json:"bestSpeed"`
	Leaderboard  []LeaderboardEntry `msgpack:"leaderboard" json:"leaderboard"`
	Achievements []string           `msgpack:"achievements" json:"achievements"`
	LastPlayDate string             `msgpack:"last_play_date" json:"lastPlayDate"`
}

// Profile is the versioned blob stored under a single key.
type Profile struct {
	Version  int      `msgpack:"version" json:"version"`
	Settings Settings `msgpack:"settings" json:"settings"`
	Game     GameData `msgpack:"game" json:"gameData"`
}

// DefaultProfile returns a fresh profile.
func DefaultProfile() Profile {
	return Profile{
		Version: ProfileVersion,
		Settings: Settings{
			Sound:   true,
			Music:   true,
			Haptics: true,
			Theme:   "auto",
			Spice:   "mild",
		},
		Game: GameData{
			Leaderboard:  []LeaderboardEntry{},
			Achievements: []string{},
		},
	}
}

// EncodeProfile serialises a profile with msgpack.
func EncodeProfile(p Profile) ([]byte, error) {
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode profile: %w", err)
	}
	return data, nil
}

// DecodeProfile parses a msgpack profile. On failure it returns
// DefaultProfile and an error wrapping ErrMalformedProfile.
func DecodeProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("storage: %w: %v", ErrMalformedProfile, err)
	}
	if p.Version <= 0 || p.Version > ProfileVersion {
		return DefaultProfile(), fmt.Errorf("storage: %w: unsupported version %d", ErrMalformedProfile, p.Version)
	}
	p.normalize()
	return p, nil
}

func (p *Profile) normalize() {
	p.Version = ProfileVersion
	if p.Settings.Theme == "" {
		p.Settings.Theme = "auto"
	}
	if p.Settings.Spice == "" {
		p.Settings.Spice = "mild"
	}
	if p.Game.Leaderboard == nil {
		p.Game.Leaderboard = []LeaderboardEntry{}
	}
	if p.Game.Achievements == nil {
		p.Game.Achievements = []string{}
	}
}

// AddLeaderboard inserts an entry and keeps the best LeaderboardSize.
// Returns the 1-based rank, or 0 when the entry did not make the board.
func (p *Profile) AddLeaderboard(e LeaderboardEntry) int {
	board := append(p.Game.Leaderboard, e)
	sort.SliceStable(board, func(i, j int) bool { return board[i].Score > board[j].Score })
	if len(board) > LeaderboardSize {
		board = board[:LeaderboardSize]
	}
	p.Game.Leaderboard = board
	for i := range board {
		if board[i] == e {
			return i + 1
		}
	}
	return 0
}

// Unlock adds achievements not yet present. Returns the newly added ids.
func (p *Profile) Unlock(ids ...string) []string {
	have := make(map[string]bool, len(p.Game.Achievements))
	for _, id := range p.Game.Achievements {
		have[id] = true
	}
	var added []string
	for _, id := range ids {
		if !have[id] {
			have[id] = true
			p.Game.Achievements = append(p.Game.Achievements, id)
			added = append(added, id)
		}
	}
	return added
}

// Record merges a finished run into the profile.
func (p *Profile) Record(name string, sum runner.Summary) {
	date := sum.EndedAt.Format("2006-01-02")
	if sum.Score > p.Game.HighScore {
		p.Game.HighScore = sum.Score
	}
	if speed := int(sum.TopSpeed); speed > p.Game.BestSpeed {
		p.Game.BestSpeed = speed
	}
	if sum.Score > 0 {
		p.AddLeaderboard(LeaderboardEntry{Name: name, Score: sum.Score, Date: date})
	}
	p.Unlock(sum.Achievements...)
	p.Game.LastPlayDate = date
}

// LoadProfile reads the stored profile. A missing profile yields defaults
// and no error; a malformed one yields defaults and ErrMalformedProfile.
func (s *Store) LoadProfile() (Profile, error) {
	data, ok, err := s.getKV(profileKey)
	if err != nil {
		return DefaultProfile(), err
	}
	if !ok {
		return DefaultProfile(), nil
	}
	return DecodeProfile(data)
}

// SaveProfile replaces the stored profile.
func (s *Store) SaveProfile(p Profile) error {
	p.normalize()
	data, err := EncodeProfile(p)
	if err != nil {
		return err
	}
	return s.putKV(profileKey, data)
}

// UpdateProfile applies fn to the stored profile and saves the result.
// A malformed stored profile is replaced by defaults before fn runs.
func (s *Store) UpdateProfile(fn func(*Profile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.LoadProfile()
	if err != nil && !errors.Is(err, ErrMalformedProfile) {
		return err
	}
	fn(&p)
	return s.SaveProfile(p)
}

// ResetProfile deletes the stored profile.
func (s *Store) ResetProfile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteKV(profileKey)
}

// ExportProfile returns the profile as indented JSON in the
// {version, settings, gameData} export format.
func (s *Store) ExportProfile() ([]byte, error) {
	p, err := s.LoadProfile()
	if err != nil && !errors.Is(err, ErrMalformedProfile) {
		return nil, err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot export profile: %w", err)
	}
	return data, nil
}

// ImportProfile merges an exported JSON document into the stored profile.
// Keys present in the document overwrite stored values; others are kept.
func (s *Store) ImportProfile(data []byte) error {
	var doc struct {
		Version  int             `json:"version"`
		Settings json.RawMessage `json:"settings"`
		GameData json.RawMessage `json:"gameData"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("storage: %w: %v", ErrMalformedProfile, err)
	}
	if doc.Version <= 0 || len(doc.Settings) == 0 || len(doc.GameData) == 0 {
		return fmt.Errorf("storage: %w: version, settings and gameData are required", ErrMalformedProfile)
	}

	var settings Settings
	var game GameData
	var decodeErr error
	err := s.UpdateProfile(func(p *Profile) {
		settings, game = p.Settings, p.Game
		if err := json.Unmarshal(doc.Settings, &settings); err != nil {
			decodeErr = err
			return
		}
		if err := json.Unmarshal(doc.GameData, &game); err != nil {
			decodeErr = err
			return
		}
		p.Settings, p.Game = settings, game
	})
	if decodeErr != nil {
		return fmt.Errorf("storage: %w: %v", ErrMalformedProfile, decodeErr)
	}
	return err
}
