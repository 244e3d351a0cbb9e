// Package interpolate substitutes ${...} secret references inside
// configuration text, standing in for the host configuration-as-code
// framework that would normally drive the resolver.
package interpolate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/systmms/secretsource/internal/logging"
)

// Resolver resolves one raw reference. found=false means the reference is not
// addressed to this resolver and should be offered to the next one.
// pkg/secretsource.Source satisfies this.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (string, bool, error)
}

var refPattern = regexp.MustCompile(`\$\{([^{}]+)\}`)

// maxConcurrent bounds the resolution fan-out so a large document does not
// stampede the backend.
const maxConcurrent = 10

// Renderer substitutes resolved secret values into documents.
type Renderer struct {
	sources []Resolver
	logger  *logging.Logger
}

// New creates a Renderer that offers each reference to sources in order.
func New(logger *logging.Logger, sources ...Resolver) *Renderer {
	return &Renderer{sources: sources, logger: logger}
}

type resolution struct {
	value   string
	claimed bool
}

// Render resolves every ${...} reference in text and returns the substituted
// document. Distinct references resolve concurrently; duplicates of one
// reference are resolved once here and deduplicated again by the source's own
// per-pass cache. References no source claims are left untouched. Any
// resolution failure aborts the render.
func (r *Renderer) Render(ctx context.Context, text string) (string, error) {
	refs := uniqueReferences(text)
	if len(refs) == 0 {
		return text, nil
	}

	results := make(map[string]resolution, len(refs))
	var resultMu sync.Mutex

	var wg sync.WaitGroup
	errCh := make(chan error, len(refs))
	semaphore := make(chan struct{}, maxConcurrent)

	for _, ref := range refs {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			value, claimed, err := r.resolveOne(ctx, ref)
			if err != nil {
				errCh <- err
				return
			}

			resultMu.Lock()
			results[ref] = resolution{value: value, claimed: claimed}
			resultMu.Unlock()
		}(ref)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		return "", err
	}

	out := text
	for ref, res := range results {
		if !res.claimed {
			r.logger.Warn("no secret source claims reference: %s", ref)
			continue
		}
		out = strings.ReplaceAll(out, "${"+ref+"}", res.value)
	}
	return out, nil
}

// resolveOne offers ref to each source in order until one claims it.
func (r *Renderer) resolveOne(ctx context.Context, ref string) (string, bool, error) {
	for _, source := range r.sources {
		value, found, err := source.Resolve(ctx, ref)
		if err != nil {
			return "", false, fmt.Errorf("resolving ${%s}: %w", ref, err)
		}
		if found {
			return value, true, nil
		}
	}
	return "", false, nil
}

// uniqueReferences extracts the distinct ${...} reference bodies in text,
// in order of first appearance.
func uniqueReferences(text string) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, m := range refPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			refs = append(refs, m[1])
		}
	}
	return refs
}
