package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dataset-reconciler/core/profile"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"
	"dataset-reconciler/core/table"
	"dataset-reconciler/feature/report"

	"go.uber.org/zap"
)

// RequestError reports unusable request options (unknown profile, bad alignment name).
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string {
	return e.Msg
}

func badRequest(format string, args ...any) error {
	return &RequestError{Msg: fmt.Sprintf(format, args...)}
}

// Config configures the compare service.
type Config struct {
	// DefaultAlignment applies when neither a profile nor the options name one.
	DefaultAlignment reconcile.Alignment
	// Bucket is listed by ListDatasets when no bucket is given.
	Bucket string
	// AllowProfileFiles lets Options.Profile name a YAML file instead of a registered profile.
	AllowProfileFiles bool
}

// Outcome is a comparison result with its report metadata.
type Outcome struct {
	Meta   report.Meta
	Result *reconcile.DiffResult
}

// Service runs comparisons for the HTTP handler and the CLI.
type Service struct {
	resolver *source.Resolver
	profiles *profile.Registry
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a new compare service.
func NewService(resolver *source.Resolver, profiles *profile.Registry, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		resolver: resolver,
		profiles: profiles,
		cfg:      cfg,
		logger:   logger,
	}
}

// BuildSpec turns options into a reconcile spec and returns the profile name used, if any.
func (s *Service) BuildSpec(opts Options) (reconcile.Spec, string, error) {
	keys := cleanList(opts.Keys)
	ignore := cleanList(opts.Ignore)

	if opts.Profile != "" {
		p, err := s.lookupProfile(opts.Profile)
		if err != nil {
			return reconcile.Spec{}, "", err
		}
		if opts.Alignment != "" || len(opts.Columns) > 0 {
			return reconcile.Spec{}, "", badRequest("profile %q fixes the alignment, do not pass alignment or columns", p.Name)
		}
		spec := p.Spec(keys)
		spec.Ignore = append(spec.Ignore, ignore...)
		spec.TrimSpace = spec.TrimSpace || opts.TrimSpace
		return spec, p.Name, nil
	}

	alignment := s.cfg.DefaultAlignment
	if opts.Alignment != "" {
		a, err := reconcile.ParseAlignment(opts.Alignment)
		if err != nil {
			return reconcile.Spec{}, "", &RequestError{Msg: err.Error()}
		}
		alignment = a
	}

	return reconcile.Spec{
		Keys:      keys,
		Alignment: alignment,
		Columns:   cleanList(opts.Columns),
		Ignore:    ignore,
		TrimSpace: opts.TrimSpace,
	}, "", nil
}

func (s *Service) lookupProfile(name string) (*profile.Profile, error) {
	if !s.cfg.AllowProfileFiles {
		if p, ok := s.profiles.Get(name); ok {
			return p, nil
		}
		return nil, badRequest("unknown profile %q", name)
	}
	p, err := s.profiles.Resolve(name)
	if err != nil {
		return nil, &RequestError{Msg: err.Error()}
	}
	return p, nil
}

// CompareTables compares two loaded tables.
func (s *Service) CompareTables(ctx context.Context, oldT, newT *table.Table, opts Options) (*Outcome, error) {
	if oldT == nil || newT == nil {
		return nil, badRequest("both old and new tables are required")
	}
	spec, profileName, err := s.BuildSpec(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := reconcile.Reconcile(oldT, newT, spec)
	if err != nil {
		return nil, err
	}

	sum := res.Summary
	s.logger.Info("Comparison finished",
		zap.String("old", oldT.Name),
		zap.String("new", newT.Name),
		zap.Strings("keys", spec.Keys),
		zap.String("alignment", string(spec.Alignment)),
		zap.Int("added", sum.Added),
		zap.Int("removed", sum.Removed),
		zap.Int("changed", sum.Changed),
		zap.Int("unchanged", sum.Unchanged),
		zap.Duration("took", time.Since(start)),
	)

	return &Outcome{
		Meta:   report.NewMeta(oldT.Name, newT.Name, profileName),
		Result: res,
	}, nil
}

// CompareSources loads both references concurrently and compares them.
func (s *Service) CompareSources(ctx context.Context, oldRef, newRef string, opts Options) (*Outcome, error) {
	if strings.TrimSpace(oldRef) == "" || strings.TrimSpace(newRef) == "" {
		return nil, badRequest("both old and new references are required")
	}
	// Reject bad options before touching any source.
	if _, _, err := s.BuildSpec(opts); err != nil {
		return nil, err
	}

	oldT, newT, err := s.resolver.LoadPair(ctx, oldRef, newRef)
	if err != nil {
		return nil, err
	}
	out, err := s.CompareTables(ctx, oldT, newT, opts)
	if err != nil {
		return nil, err
	}
	out.Meta.OldSource, out.Meta.NewSource = oldRef, newRef
	return out, nil
}

// ReadUpload parses an uploaded table.
func (s *Service) ReadUpload(ctx context.Context, name string, data []byte) (*table.Table, error) {
	t, err := s.resolver.ReadUpload(ctx, name, bytes.NewReader(data))
	if err != nil {
		return nil, &RequestError{Msg: err.Error()}
	}
	return t, nil
}

// Profiles returns the registered profiles.
func (s *Service) Profiles() []*profile.Profile {
	return s.profiles.List()
}

// ListDatasets lists comparable objects in storage.
func (s *Service) ListDatasets(ctx context.Context, bucket, prefix string) ([]source.ObjectEntry, error) {
	if bucket == "" {
		bucket = s.cfg.Bucket
	}
	entries, err := s.resolver.List(ctx, bucket, prefix)
	if err != nil {
		return nil, &source.Error{Ref: storage.Scheme + bucket + "/" + prefix, Err: err}
	}
	return entries, nil
}

// Publish uploads a rendered report to an s3:// reference.
func (s *Service) Publish(ctx context.Context, ref string, data []byte, contentType string) error {
	if err := s.resolver.Publish(ctx, ref, data, contentType); err != nil {
		var srcErr *source.Error
		if errors.As(err, &srcErr) {
			return err
		}
		return &source.Error{Ref: ref, Err: err}
	}
	return nil
}

// cleanList trims entries and drops blanks. Names are never split: commas are legal in
// column headers.
func cleanList(in []string) []string {
	var out []string
	for _, v := range in {
		if name := strings.TrimSpace(v); name != "" {
			out = append(out, name)
		}
	}
	return out
}
