package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quizshare-service/internal/app"
	"quizshare-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuizCache is a read-through TTL cache over another repository. Slug and
// token lookups are cached; writes and the duplicate check always go to the
// inner repository so the conflict decision never sees stale data.
type QuizCache struct {
	inner app.QuizRepository
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu      sync.RWMutex
	entries map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizCache(inner app.QuizRepository, ttl time.Duration) *QuizCache {
	return &QuizCache{
		inner:   inner,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		entries: make(map[string]cachedQuiz),
	}
}

func (c *QuizCache) FindByNameAndSlug(ctx context.Context, name, slug string) (domain.Quiz, error) {
	return c.inner.FindByNameAndSlug(ctx, name, slug)
}

func (c *QuizCache) FindBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	return c.lookup(ctx, "slug:"+slug, func() (domain.Quiz, error) {
		return c.inner.FindBySlug(ctx, slug)
	})
}

func (c *QuizCache) FindByToken(ctx context.Context, token string) (domain.Quiz, error) {
	return c.lookup(ctx, "token:"+token, func() (domain.Quiz, error) {
		return c.inner.FindByToken(ctx, token)
	})
}

func (c *QuizCache) List(ctx context.Context) ([]domain.Quiz, error) {
	return c.inner.List(ctx)
}

func (c *QuizCache) Insert(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	return c.inner.Insert(ctx, quiz)
}

func (c *QuizCache) DeleteBySlug(ctx context.Context, slug string) error {
	// Evict before deleting so a concurrent read cannot refill from a quiz
	// that is about to disappear and then serve it past its deletion.
	if quiz, err := c.inner.FindBySlug(ctx, slug); err == nil {
		c.evict("token:" + quiz.RedirectToken)
	}
	c.evict("slug:" + slug)
	return c.inner.DeleteBySlug(ctx, slug)
}

func (c *QuizCache) lookup(_ context.Context, key string, load func() (domain.Quiz, error)) (domain.Quiz, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.quiz, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.entries[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.quiz, nil
		}
		c.mu.RUnlock()

		quiz, err := load()
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.entries[key] = cachedQuiz{quiz: quiz, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) evict(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
