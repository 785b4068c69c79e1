package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/go-photo-mentor/pkg/domain"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Store は結果を保存するバックエンドの契約です。go-cache の *Cache がそのまま満たすのだ。
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// ResponseCache はプロセス存続中だけ有効な講評結果のキャッシュです。追い出しはしません。
type ResponseCache struct {
	store  Store
	group  singleflight.Group
	mu     sync.Mutex
	hits   int
	misses int
}

// New は期限なし・クリーンアップなしの go-cache を使う ResponseCache を返します。
func New() *ResponseCache {
	return NewWithStore(gocache.New(gocache.NoExpiration, 0))
}

// NewWithStore は任意のバックエンドで ResponseCache を作るのだ。
func NewWithStore(store Store) *ResponseCache {
	return &ResponseCache{store: store}
}

// Get はキーに対応する結果を返します。
func (c *ResponseCache) Get(key string) (domain.AnalysisResult, bool) {
	val, ok := c.store.Get(key)
	if !ok {
		return domain.AnalysisResult{}, false
	}
	res, ok := val.(domain.AnalysisResult)
	return res, ok
}

// Put は結果を保存します。FromCache フラグは保存時に落とすのだ。
func (c *ResponseCache) Put(key string, result domain.AnalysisResult) {
	result.FromCache = false
	c.store.Set(key, result, gocache.NoExpiration)
}

// GetOrCompute はキャッシュを確認し、なければ compute を1回だけ実行して保存します。
// 同じキーへの同時呼び出しは singleflight で束ね、実リクエストが重複しないようにするのだ。
// compute には呼び出し元のキャンセルを切り離した ctx を渡し、各呼び出し元は自分の ctx だけで待機をやめます。
func (c *ResponseCache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (domain.AnalysisResult, error)) (domain.AnalysisResult, error) {
	if res, ok := c.Get(key); ok {
		c.record(true)
		res.FromCache = true
		return res, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// 待機中に他のゴルーチンが保存している可能性があるので再確認するのだ
		if res, ok := c.Get(key); ok {
			res.FromCache = true
			return res, nil
		}

		res, err := compute(flightCtx)
		if err != nil {
			return nil, err
		}
		c.Put(key, res)
		return res, nil
	})

	var flight singleflight.Result
	select {
	case <-ctx.Done():
		return domain.AnalysisResult{}, ctx.Err()
	case flight = <-ch:
	}
	if flight.Err != nil {
		return domain.AnalysisResult{}, flight.Err
	}

	res, ok := flight.Val.(domain.AnalysisResult)
	if !ok {
		return domain.AnalysisResult{}, fmt.Errorf("unexpected return type from singleflight: %T", flight.Val)
	}
	if flight.Shared {
		slog.DebugContext(ctx, "同じキーのリクエストを共有したのだ", "key_len", len(key))
	}
	c.record(res.FromCache)
	return res, nil
}

// Stats はヒット数とミス数を返します。
func (c *ResponseCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *ResponseCache) record(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}
