package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// gooseLogger sends goose progress lines to a logging.Logger at info level.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

// Fatalf keeps the goose.Logger contract of the std logger it replaces.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}
