package system

import (
	"sort"
	"sync"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/eventbus"
)

// TrackID identifies a playing sound. IDs restart at 0 after Clear.
type TrackID int

// Track is the state of one playing sound
type Track struct {
	Source string  `json:"source"`
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
	Repeat bool    `json:"repeat"`
}

// SoundService tracks playing sounds. Disabling sound mutes every track and
// notifies subscribers with the new enabled state.
type SoundService struct {
	mu      sync.Mutex
	enabled bool
	next    TrackID
	active  map[TrackID]*Track
	status  eventbus.Bus[bool]
}

// NewSoundService creates a sound service
func NewSoundService(enabled bool) *SoundService {
	return &SoundService{
		enabled: enabled,
		active:  make(map[TrackID]*Track),
	}
}

// IsEnabled reports whether sound is on
func (s *SoundService) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Enable turns sound on and unmutes every track
func (s *SoundService) Enable() {
	s.setEnabled(true)
}

// Disable turns sound off and mutes every track
func (s *SoundService) Disable() {
	s.setEnabled(false)
}

func (s *SoundService) setEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	for _, track := range s.active {
		track.Muted = !enabled
	}
	s.mu.Unlock()

	s.status.Publish(enabled)
}

// Subscribe registers a listener for enabled state changes
func (s *SoundService) Subscribe(listener eventbus.Listener[bool]) eventbus.Subscription {
	return s.status.Subscribe(listener)
}

// Play starts a sound and returns its track id
func (s *SoundService) Play(source string, volume float64) TrackID {
	return s.start(source, volume, false)
}

// PlayOnRepeat starts a looping sound
func (s *SoundService) PlayOnRepeat(source string, volume float64) TrackID {
	return s.start(source, volume, true)
}

func (s *SoundService) start(source string, volume float64, repeat bool) TrackID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.active[id] = &Track{
		Source: source,
		Volume: clampVolume(volume),
		Muted:  !s.enabled,
		Repeat: repeat,
	}
	return id
}

// Mute silences a track. Unknown ids are ignored.
func (s *SoundService) Mute(id TrackID) {
	s.update(id, func(t *Track) { t.Muted = true })
}

// Unmute restores a track. Unknown ids are ignored.
func (s *SoundService) Unmute(id TrackID) {
	s.update(id, func(t *Track) { t.Muted = false })
}

// Volume sets a track's volume, clamped to [0, 1]
func (s *SoundService) Volume(id TrackID, volume float64) {
	s.update(id, func(t *Track) { t.Volume = clampVolume(volume) })
}

// Ended reports that a track finished playing. Repeating tracks restart.
func (s *SoundService) Ended(id TrackID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if track, ok := s.active[id]; ok && !track.Repeat {
		delete(s.active, id)
	}
}

// Stop removes a track
func (s *SoundService) Stop(id TrackID) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}

// Clear drops every track and restarts id numbering
func (s *SoundService) Clear() {
	s.mu.Lock()
	s.next = 0
	s.active = make(map[TrackID]*Track)
	s.mu.Unlock()
}

// Track returns a copy of a track's state
func (s *SoundService) Track(id TrackID) (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track, ok := s.active[id]
	if !ok {
		return Track{}, false
	}
	return *track, true
}

// Active returns the ids of every playing track in ascending order
func (s *SoundService) Active() []TrackID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]TrackID, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *SoundService) update(id TrackID, fn func(*Track)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if track, ok := s.active[id]; ok {
		fn(track)
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
