package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/haivivi/studio/pkg/studio"
)

// DefaultArtifactTTL is how long binary artifacts stay downloadable.
const DefaultArtifactTTL = 10 * time.Minute

// artifactCache keeps binary artifacts so SSE clients can fetch them by ID
// after the event announcing them.
type artifactCache struct {
	c *cache.Cache
}

func newArtifactCache(ttl time.Duration) *artifactCache {
	if ttl <= 0 {
		ttl = DefaultArtifactTTL
	}
	return &artifactCache{c: cache.New(ttl, 2*ttl)}
}

// put stores a and returns its download ID.
func (a *artifactCache) put(art studio.Artifact) string {
	id := uuid.NewString()
	a.c.SetDefault(id, art)
	return id
}

func (a *artifactCache) get(id string) (studio.Artifact, bool) {
	v, ok := a.c.Get(id)
	if !ok {
		return studio.Artifact{}, false
	}
	return v.(studio.Artifact), true
}

func (a *artifactCache) len() int {
	return a.c.ItemCount()
}
