package observability

import (
	"sync"

	"github.com/danmuck/kproto/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var tagOnce sync.Once

// InitLogger configures the runtime log profile and tags the global logger
// with the application name. Only the first call tags.
func InitLogger(app string) zerolog.Logger {
	logging.ConfigureRuntime()
	tagOnce.Do(func() {
		log.Logger = log.Logger.With().Str("app", app).Logger()
	})
	return log.Logger
}
