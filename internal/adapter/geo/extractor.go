// Package geo recovers latitude/longitude pairs from Google Maps links.
package geo

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"go.uber.org/zap"
)

// coordinatePatterns are tried in priority order. A single URL may contain
// several coordinate-shaped substrings (a viewport center differs from a
// pinned place); @lat,lng is the most representative of the user's intent,
// hence first.
var coordinatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`),       // viewport marker
	regexp.MustCompile(`!3d(-?\d+\.?\d*)!4d(-?\d+\.?\d*)`),   // embedded place marker
	regexp.MustCompile(`ll=(-?\d+\.?\d*),(-?\d+\.?\d*)`),     // ll query parameter
	regexp.MustCompile(`/place/(-?\d+\.?\d*),(-?\d+\.?\d*)`), // /place/ path segment
}

type Extractor struct {
	client *http.Client
	logger *logger.Logger
}

func NewExtractor(httpTimeout time.Duration, log *logger.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: httpTimeout},
		logger: log.Named("CoordinateExtractor"),
	}
}

// Extract recovers a coordinate pair from a map link. It never fails: a bad
// link, an unreachable redirect or an unmatched URL all yield (nil, nil) and
// the caller treats that as "no coordinates found".
func (e *Extractor) Extract(ctx context.Context, link string) (*float64, *float64) {
	finalURL := link

	if isShortLink(link) {
		resolved, err := e.resolve(ctx, link)
		if err != nil {
			// Degrade gracefully: match against the original link text.
			e.logger.Warn("Failed to resolve short link, matching original text",
				zap.String("link", link), zap.Error(err))
		} else {
			finalURL = resolved
		}
	}

	for _, re := range coordinatePatterns {
		m := re.FindStringSubmatch(finalURL)
		if m == nil {
			continue
		}
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		return &lat, &lng
	}

	return nil, nil
}

func isShortLink(link string) bool {
	return strings.Contains(link, "goo.gl") || strings.Contains(link, "maps.app.goo.gl")
}

// resolve follows redirects and returns the final URL the short link lands on.
func (e *Extractor) resolve(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}
