package asset

import (
	"context"
	"io/fs"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/boss-rush/parameter"
)

// Result carries one loaded item from a worker to the frame goroutine
type Result struct {
	ID   string
	Data []byte
	Err  error
}

// Server reads items from a filesystem on background goroutines
// Results are delivered on a channel; the receiver owns all tracker mutation
type Server struct {
	fsys        fs.FS
	concurrency int
	spawn       func(func())
	log         *zap.Logger
}

// NewServer creates a loader over fsys, spawn launches the coordinating goroutine
func NewServer(fsys fs.FS, spawn func(func()), log *zap.Logger) *Server {
	if spawn == nil {
		spawn = func(fn func()) { go fn() }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		fsys:        fsys,
		concurrency: parameter.AssetLoadConcurrency,
		spawn:       spawn,
		log:         log.Named("asset"),
	}
}

// SetConcurrency bounds the number of parallel reads
func (s *Server) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// Load starts reading ids and returns a channel closed after every id produced a Result
// Cancelling ctx reports the remaining ids as failed
func (s *Server) Load(ctx context.Context, ids []string) <-chan Result {
	out := make(chan Result, max(len(ids), parameter.AssetResultBuffer))

	s.spawn(func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for _, id := range ids {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					out <- Result{ID: id, Err: err}
					return nil
				}
				data, err := fs.ReadFile(s.fsys, id)
				if err != nil {
					s.log.Warn("asset load failed", zap.String("id", id), zap.Error(err))
				} else {
					s.log.Debug("asset loaded", zap.String("id", id), zap.Int("bytes", len(data)))
				}
				out <- Result{ID: id, Data: data, Err: err}
				// Per-item failures are tracked, never abort siblings
				return nil
			})
		}
		_ = g.Wait()
	})
	return out
}
