package feedback

import (
	"context"
	"log/slog"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nikogura/storyboard-scorer/pkg/llm"
	"github.com/pkg/errors"
)

const (
	// DefaultCacheSize bounds the number of cached mentor replies.
	DefaultCacheSize = 1024
	// DefaultTimeout bounds a single mentor call.
	DefaultTimeout = 10 * time.Second
)

// Options configures a Service. A nil Completer means every request gets fallback feedback.
type Options struct {
	Completer llm.Completer
	CacheSize int
	Timeout   time.Duration
	Offline   bool
	Logger    *slog.Logger
}

// Service produces per-section mentor feedback. Replies from the model are cached by section id
// and content, so asking again about unchanged text does not call the model.
type Service struct {
	completer llm.Completer
	cache     *lru.Cache[string, Feedback]
	timeout   time.Duration
	offline   bool
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a feedback service.
func NewService(opts Options) (svc *Service, err error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var cache *lru.Cache[string, Feedback]
	cache, err = lru.New[string, Feedback](size)
	if err != nil {
		err = errors.Wrap(err, "failed to create feedback cache")
		return svc, err
	}

	svc = &Service{
		completer: opts.Completer,
		cache:     cache,
		timeout:   timeout,
		offline:   opts.Offline,
		log:       log,
		now:       time.Now,
	}
	return svc, err
}

// Generate returns feedback for the request. Model failures never surface: the fixed message for
// the section kind is returned instead. The only error is an invalid request.
func (s *Service) Generate(ctx context.Context, req Request) (fb Feedback, err error) {
	err = req.Validate()
	if err != nil {
		return fb, err
	}

	key := CacheKey(req.SectionID, req.Content)
	if hit, ok := s.cache.Get(key); ok {
		fb = hit
		return fb, err
	}

	if s.offline {
		fb = Offline(req, s.now())
		return fb, err
	}

	if s.completer == nil {
		s.log.Debug("mentor model not configured", "section", req.SectionID)
		fb = Fallback(req, s.now())
		return fb, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var reply string
	reply, err = s.completer.Complete(callCtx, mentorSystemPrompt, buildPrompt(req))
	if err == nil {
		fb, err = parseReply(reply, req, s.now())
	}
	if err != nil {
		s.log.Warn("mentor feedback failed",
			"section", req.SectionID,
			"timeout", s.timeout.String(),
			"error", err,
		)
		fb = Fallback(req, s.now())
		err = nil
		return fb, err
	}

	s.cache.Add(key, fb)
	return fb, err
}

// History returns the cached feedback for a section, newest first.
func (s *Service) History(sectionID string) (history []Feedback) {
	history = []Feedback{}
	for _, fb := range s.cache.Values() {
		if fb.SectionID == sectionID {
			history = append(history, fb)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})
	return history
}

// Clear drops every cached reply.
func (s *Service) Clear() {
	s.cache.Purge()
}

// Len reports the number of cached replies.
func (s *Service) Len() (n int) {
	n = s.cache.Len()
	return n
}
