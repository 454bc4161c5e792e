package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/models"
)

// SectionNames is the fixed set of home-page sections. The aggregate always
// contains every name; missing or inactive rows fall back to defaults.
var SectionNames = []string{
	"hero",
	"features",
	"experience",
	"stats",
	"promise",
	"newsletter",
	"services",
	"projects",
	"faq",
	"testimonials",
}

var sectionDefaults = map[string]map[string]any{
	"hero": {
		"title":    "Bâtir aujourd'hui, pour demain",
		"subtitle": "Entrepreneur général en construction résidentielle et commerciale",
		"cta":      map[string]any{"label": "Demander une soumission", "href": "/contact"},
	},
	"features": {
		"title": "Pourquoi nous choisir",
		"items": []any{
			map[string]any{"title": "Travail garanti", "icon": "shield"},
			map[string]any{"title": "Équipe certifiée", "icon": "badge"},
			map[string]any{"title": "Délais respectés", "icon": "clock"},
		},
	},
	"experience": {
		"title": "Plus de 25 ans d'expérience",
		"body":  "Des centaines de projets livrés partout au Québec.",
	},
	"stats": {
		"items": []any{
			map[string]any{"label": "Projets réalisés", "value": 450},
			map[string]any{"label": "Années d'expérience", "value": 25},
			map[string]any{"label": "Clients satisfaits", "value": 380},
		},
	},
	"promise": {
		"title": "Notre engagement",
		"body":  "Qualité, transparence et respect des échéanciers sur chaque chantier.",
	},
	"newsletter": {
		"title":       "Restez informé",
		"description": "Recevez nos dernières réalisations et conseils.",
	},
	"services":     {"title": "Nos services", "limit": 6},
	"projects":     {"title": "Réalisations récentes", "limit": 6},
	"faq":          {"title": "Questions fréquentes", "limit": 8},
	"testimonials": {"title": "Ce que disent nos clients", "limit": 4},
}

const (
	homeCacheKey = "home:content"
	homeCacheTTL = 5 * time.Minute
)

type HomeContentStore interface {
	ListActive(ctx context.Context) ([]models.HomeSection, error)
	GetByName(ctx context.Context, name string) (models.HomeSection, error)
	Upsert(ctx context.Context, section models.HomeSection) error
}

type HomeContentService struct {
	sections HomeContentStore
	cache    *redis.Client
	log      zerolog.Logger
}

func NewHomeContentService(sections HomeContentStore, cache *redis.Client, log zerolog.Logger) *HomeContentService {
	return &HomeContentService{
		sections: sections,
		cache:    cache,
		log:      log,
	}
}

// Aggregate returns the full home-page tree, one entry per known section.
func (s *HomeContentService) Aggregate(ctx context.Context) (map[string]map[string]any, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	rows, err := s.sections.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.HomeSection, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}

	out := make(map[string]map[string]any, len(SectionNames))
	for _, name := range SectionNames {
		if row, ok := byName[name]; ok && len(row.Content) > 0 {
			out[name] = row.Content
		} else {
			out[name] = DefaultSection(name)
		}
	}

	s.writeCache(ctx, out)
	return out, nil
}

func (s *HomeContentService) UpsertSection(ctx context.Context, name string, content map[string]any, active bool) error {
	if !KnownSection(name) {
		return ErrUnknownSection
	}

	section := models.HomeSection{
		ID:      ids.New(),
		Name:    name,
		Content: content,
		Active:  active,
	}
	if err := s.sections.Upsert(ctx, section); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *HomeContentService) readCache(ctx context.Context) map[string]map[string]any {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, homeCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var out map[string]map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func (s *HomeContentService) writeCache(ctx context.Context, content map[string]map[string]any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, homeCacheKey, raw, homeCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("home content cache write failed")
	}
}

func (s *HomeContentService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, homeCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("home content cache invalidation failed")
	}
}

// DefaultSection returns a copy of the hardcoded fallback for a section.
func DefaultSection(name string) map[string]any {
	def, ok := sectionDefaults[name]
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(def))
	for k, v := range def {
		out[k] = v
	}
	return out
}

func KnownSection(name string) bool {
	_, ok := sectionDefaults[name]
	return ok
}
