package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"quizshare-service/internal/app"
	"quizshare-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuizCache caches whole quizzes as JSON in Redis and falls back to the
// inner repository on a miss. Keys:
//
//	quiz:slug:{slug}   -> quiz JSON
//	quiz:token:{token} -> quiz JSON
//
// Writes and the duplicate check pass through uncached; deletion evicts both
// keys before touching the store.
type QuizCache struct {
	client *redis.Client
	inner  app.QuizRepository
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, inner app.QuizRepository, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) FindByNameAndSlug(ctx context.Context, name, slug string) (domain.Quiz, error) {
	return c.inner.FindByNameAndSlug(ctx, name, slug)
}

func (c *QuizCache) FindBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	return c.lookup(ctx, slugKey(slug), func() (domain.Quiz, error) {
		return c.inner.FindBySlug(ctx, slug)
	})
}

func (c *QuizCache) FindByToken(ctx context.Context, token string) (domain.Quiz, error) {
	return c.lookup(ctx, tokenKey(token), func() (domain.Quiz, error) {
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
	if quiz, err := c.inner.FindBySlug(ctx, slug); err == nil {
		_ = c.client.Del(ctx, tokenKey(quiz.RedirectToken)).Err()
	}
	_ = c.client.Del(ctx, slugKey(slug)).Err()
	return c.inner.DeleteBySlug(ctx, slug)
}

func (c *QuizCache) lookup(ctx context.Context, key string, load func() (domain.Quiz, error)) (domain.Quiz, error) {
	if quiz, ok := c.get(ctx, key); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := c.get(ctx, key); ok {
			return quiz, nil
		}

		quiz, err := load()
		if err != nil {
			return domain.Quiz{}, err
		}
		c.set(ctx, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *QuizCache) get(ctx context.Context, key string) (domain.Quiz, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

// set caches the quiz under both its slug and token keys, best effort.
func (c *QuizCache) set(ctx context.Context, quiz domain.Quiz) {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	ttl := c.ttlWithJitter()
	pipe := c.client.Pipeline()
	pipe.Set(ctx, slugKey(quiz.Slug), raw, ttl)
	if quiz.RedirectToken != "" {
		pipe.Set(ctx, tokenKey(quiz.RedirectToken), raw, ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func slugKey(slug string) string {
	return "quiz:slug:" + slug
}

func tokenKey(token string) string {
	return "quiz:token:" + token
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
