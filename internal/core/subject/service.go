// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subject

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/taibuivan/libretto/internal/manifest"
	"github.com/taibuivan/libretto/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
ListSubjects returns the catalog's subject vocabulary.

Description: Every stored subject element runs through the tolerant
subject codec; elements that don't decode are dropped. Distinct stored
shapes that decode to the same subject are merged, their usage counts
summed. The result is sorted by name.

Parameters:
  - context: context.Context

Returns:
  - []*Subject: Deduplicated subjects, sorted by name
  - error: Repository errors
*/
func (service *Service) ListSubjects(context context.Context) ([]*Subject, error) {
	elements, err := service.repo.ListRawSubjects(context)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*Subject)
	dropped := 0

	for _, raw := range elements {
		var value any
		if err := json.Unmarshal(raw.Element, &value); err != nil {
			dropped++
			continue
		}

		// Stored hrefs are already resolved, no sink needed for a
		// read-only aggregation.
		decoded := manifest.DecodeSubject(value, manifest.IdentityHref, nil)
		if decoded == nil {
			dropped++
			continue
		}

		key := decoded.Name() + "\x00" + pointer.Val(decoded.Scheme) + "\x00" + pointer.Val(decoded.Code)
		if existing, found := merged[key]; found {
			existing.Publications += raw.Count
			continue
		}

		merged[key] = &Subject{
			Name:         decoded.Name(),
			Scheme:       decoded.Scheme,
			Code:         decoded.Code,
			Publications: raw.Count,
		}
	}

	if dropped > 0 {
		service.logger.Debug("subjects_dropped_during_aggregation", slog.Int("count", dropped))
	}

	subjects := make([]*Subject, 0, len(merged))
	for _, entry := range merged {
		subjects = append(subjects, entry)
	}

	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Name != subjects[j].Name {
			return subjects[i].Name < subjects[j].Name
		}
		return pointer.Val(subjects[i].Scheme) < pointer.Val(subjects[j].Scheme)
	})

	return subjects, nil
}
