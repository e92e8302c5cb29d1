// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publication

import (
	"context"
	"time"
)

// Repository defines the persistence contract for publications.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Publication, int, error)
	FindByID(context context.Context, id string) (*Publication, error)
	FindBySlug(context context.Context, slug string) (*Publication, error)
	Create(context context.Context, publication *Publication) error
	Update(context context.Context, publication *Publication) error
	SoftDelete(context context.Context, id string) error
}

// ManifestCache defines the read-through cache for serialized manifests,
// keyed by publication id. A miss is signalled by (nil, nil).
type ManifestCache interface {
	Get(context context.Context, id string) ([]byte, error)
	Set(context context.Context, id string, manifest []byte, ttl time.Duration) error
	Invalidate(context context.Context, id string) error
}
