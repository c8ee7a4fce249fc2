// Package navigation tracks where the single console operator currently is.
package navigation

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mytime/console/internal/core/ports"
)

// Location is an in-process router: Navigate moves it, CurrentPath reads it.
// The console host turns the current path into HTTP redirects.
type Location struct {
	mu      sync.RWMutex
	current string
	log     zerolog.Logger
}

func NewLocation(start string, log zerolog.Logger) *Location {
	return &Location{current: start, log: log.With().Str("component", "navigation").Logger()}
}

func (l *Location) Navigate(path string) {
	l.mu.Lock()
	from := l.current
	l.current = path
	l.mu.Unlock()

	l.log.Debug().Str("from", from).Str("to", path).Msg("navigate")
}

func (l *Location) CurrentPath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

var _ ports.Navigator = (*Location)(nil)
