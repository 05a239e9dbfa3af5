package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rajkumarmali01/Employee-Analysis/internal/logging"
)

// ErrUnknownProfile is wrapped by Service.Profile for names not in the registry.
var ErrUnknownProfile = errors.New("unknown profile")

// DefaultProfileName is used when a request does not name a profile.
const DefaultProfileName = "elcm-group"

// ServiceConfig configures a Service. Zero values fall back to defaults.
type ServiceConfig struct {
	DefaultProfile string        // Profile used when none is named
	Encoding       string        // Overrides every profile's encoding when set
	MaxConcurrent  int           // Runs admitted at once
	MaxWait        time.Duration // Wait for a slot before ErrTooManyUploads
	Timeout        time.Duration // Per-run deadline, 0 for none
}

// Service runs the pipeline for a frontend. It resolves profiles, bounds
// concurrency and tags each run with an ID for the logs.
type Service struct {
	defaultProfile string
	encoding       Encoding
	timeout        time.Duration
	limiter        *Limiter
}

// NewService creates a Service. It fails if the default profile is not
// registered or the encoding override is not supported.
func NewService(cfg ServiceConfig) (*Service, error) {
	s := &Service{
		defaultProfile: cfg.DefaultProfile,
		timeout:        cfg.Timeout,
		limiter:        NewLimiter(cfg.MaxConcurrent, cfg.MaxWait),
	}
	if s.defaultProfile == "" {
		s.defaultProfile = DefaultProfileName
	}
	if _, ok := Get(s.defaultProfile); !ok {
		return nil, fmt.Errorf("default profile: %w %q", ErrUnknownProfile, s.defaultProfile)
	}
	if cfg.Encoding != "" {
		enc, err := ParseEncoding(cfg.Encoding)
		if err != nil {
			return nil, fmt.Errorf("encoding override: %w", err)
		}
		s.encoding = enc
	}
	return s, nil
}

// DefaultProfile returns the name used when a request names none.
func (s *Service) DefaultProfile() string {
	return s.defaultProfile
}

// Limiter exposes the run limiter for status reporting and shutdown draining.
func (s *Service) Limiter() *Limiter {
	return s.limiter
}

// Profiles lists every registered profile.
func (s *Service) Profiles() []ProfileInfo {
	all := All()
	infos := make([]ProfileInfo, len(all))
	for i, p := range all {
		infos[i] = p.Info()
		if s.encoding != "" {
			infos[i].Encoding = string(s.encoding)
		}
	}
	return infos
}

// Profile resolves name to a profile, applying the encoding override.
// An empty name selects the default profile.
func (s *Service) Profile(name string) (Profile, error) {
	if name == "" {
		name = s.defaultProfile
	}
	p, ok := Get(name)
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if s.encoding != "" {
		p.Encoding = s.encoding
	}
	return p, nil
}

// Process runs the pipeline once. The returned error covers only admission
// failures (unknown profile, no free slot, cancelled wait); everything that
// goes wrong inside the pipeline is reported in Result.Diagnostics.
func (s *Service) Process(ctx context.Context, profileName string, in Input) (*Result, error) {
	p, err := s.Profile(profileName)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	runID := uuid.New().String()
	logger := logging.WithFields(ctx, "run_id", runID, "profile", p.Name)
	logger.Debug("pipeline run started", append([]any{
		"primary_bytes", len(in.Primary),
		"seating_bytes", len(in.Seating),
	}, clientAttrs(ctx)...)...)

	start := time.Now()
	res := Run(ctx, p, in)
	res.RunID = runID

	rows := 0
	if res.Table != nil {
		rows = res.Table.Len()
	}
	attrs := []any{
		"rows", rows,
		"joined", res.Joined,
		"errors", len(res.Diagnostics.Errors()),
		"warnings", len(res.Diagnostics.Warnings()),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if res.Join != nil {
		attrs = append(attrs, "matched", res.Join.Matched, "unmatched", res.Join.Unmatched)
	}
	if res.Diagnostics.HasErrors() {
		logger.Warn("pipeline run failed", attrs...)
	} else {
		logger.Info("pipeline run completed", attrs...)
	}

	return res, nil
}
