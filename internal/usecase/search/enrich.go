package search

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	domart "github.com/relocation-quest/atlas/internal/domain/article"
	domsearch "github.com/relocation-quest/atlas/internal/domain/search"
)

// previewLen bounds body text shipped to the conversational layer.
const previewLen = 200

// fuzzyPrefixLen bounds the containment comparison so pathological chunk
// titles cannot trigger full-string scans over the whole display index.
const fuzzyPrefixLen = 64

// sectionSuffix matches chunk titles of the form "Topic — Section N"
// (em dash, en dash, or hyphen).
var sectionSuffix = regexp.MustCompile(`(?i)\s*[—–-]+\s*section\s+\d+\s*$`)

// enrich joins fused chunks back to article display metadata. A chunk with no
// matching display record is still returned with empty image and slug fields;
// a failed display-index read downgrades every record the same way. Either
// way enrichment never drops a result.
func (s *Service) enrich(ctx context.Context, fused []domsearch.FusedResult) []domart.Record {
	display, err := s.articles.DisplayIndex(ctx)
	if err != nil {
		s.logger.Warn("Display index unavailable, returning bare results", zap.Error(err))
		display = nil
	}

	out := make([]domart.Record, 0, len(fused))
	for i := range fused {
		f := &fused[i]
		rec := domart.Record{
			ID:      f.ID(),
			Title:   f.Title(),
			Content: f.Content(),
			Score:   f.Score(),
		}
		rec.Content = rec.Preview(previewLen)

		if match := matchDisplay(f.Title(), display); match != nil {
			rec.Slug = match.Slug
			rec.HeroImageURL = match.HeroImageURL
		}
		out = append(out, rec)
	}
	return out
}

// matchDisplay resolves a chunk title to a display record, trying each
// strategy in order until one succeeds:
//
//  1. exact title equality (case-insensitive)
//  2. fuzzy containment of one bounded title prefix in the other
//  3. the "Topic — Section N" suffix stripped, topic matched as a substring
func matchDisplay(chunkTitle string, display []domart.Record) *domart.Record {
	title := strings.ToLower(strings.TrimSpace(chunkTitle))
	if title == "" {
		return nil
	}

	for i := range display {
		if strings.ToLower(display[i].Title) == title {
			return &display[i]
		}
	}

	prefix := boundedPrefix(title)
	for i := range display {
		candidate := strings.ToLower(display[i].Title)
		if strings.Contains(candidate, prefix) || strings.Contains(title, boundedPrefix(candidate)) {
			return &display[i]
		}
	}

	if topic := strings.TrimSpace(sectionSuffix.ReplaceAllString(title, "")); topic != "" && topic != title {
		for i := range display {
			if strings.Contains(strings.ToLower(display[i].Title), topic) {
				return &display[i]
			}
		}
	}

	return nil
}

func boundedPrefix(s string) string {
	runes := []rune(s)
	if len(runes) > fuzzyPrefixLen {
		return string(runes[:fuzzyPrefixLen])
	}
	return s
}
