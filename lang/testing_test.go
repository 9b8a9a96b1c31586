package lang

import (
	"io"

	"github.com/ardnew/caption/log"
)

func testLogger() log.Logger {
	return log.Make(io.Discard, log.WithLevel(log.LevelTrace))
}
