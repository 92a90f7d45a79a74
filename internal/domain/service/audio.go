package service

import (
	"sync"
	"time"
)

const defaultCueWindow = 2 * time.Second

type audioPrefsStorage interface {
	SoundEnabled(chatID int64) bool
	SetSoundEnabled(chatID int64, enabled bool)
}

// AudioCueService decides whether a delivery may carry an audible
// notification. The per-user enabled flag is persisted; the cue itself
// is debounced globally so a burst of high-priority notifications in
// one tick produces a single audible message, the rest go out silent.
type AudioCueService struct {
	prefs  audioPrefsStorage
	window time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewAudioCueService(prefs audioPrefsStorage, window time.Duration) *AudioCueService {
	if window <= 0 {
		window = defaultCueWindow
	}
	return &AudioCueService{
		prefs:  prefs,
		window: window,
		now:    time.Now,
	}
}

func (s *AudioCueService) Enabled(chatID int64) bool {
	return s.prefs.SoundEnabled(chatID)
}

func (s *AudioCueService) SetEnabled(chatID int64, enabled bool) {
	s.prefs.SetSoundEnabled(chatID, enabled)
}

// Cue reports whether this delivery may be audible. A no-op while the
// user has sound disabled or while the debounce window is still open.
func (s *AudioCueService) Cue(chatID int64) bool {
	if !s.prefs.SoundEnabled(chatID) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.last) < s.window {
		return false
	}
	s.last = now

	return true
}
