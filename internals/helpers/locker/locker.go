// file: internals/helpers/locker/locker.go
package locker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrBusy: scope sedang dipakai proses lain (transition/aggregation yang masih jalan).
var ErrBusy = errors.New("scope sedang diproses")

// Locker menjamin paling banyak satu proses in-flight per scope.
// Engine sendiri tidak mengunci apa pun; pemanggil (controller/CLI) yang wajib pakai ini.
type Locker interface {
	Acquire(ctx context.Context, scope string, ttl time.Duration) (Release, error)
}

// Scope yang dipakai pemanggil engine.
const ScopeYearTransition = "year-transition"

func ScopeGradeAggregation(classID, structureID uuid.UUID) string {
	return "grade-aggregation:" + classID.String() + ":" + structureID.String()
}

// DefaultTTL: batas atas durasi satu run; lock lepas sendiri kalau proses mati.
const DefaultTTL = 10 * time.Minute

// Release melepas lock. Aman dipanggil lebih dari sekali.
type Release func(ctx context.Context) error

/* =========================
   Redis (multi instance)
========================= */

// releaseScript: hapus hanya kalau token masih milik kita.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Redis struct {
	Client redis.Cmdable
	Prefix string
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{Client: client, Prefix: "schoolku:lock:"}
}

func (r *Redis) Acquire(ctx context.Context, scope string, ttl time.Duration) (Release, error) {
	key := r.Prefix + scope
	token := uuid.NewString()

	ok, err := r.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBusy
	}

	var once sync.Once
	return func(ctx context.Context) error {
		var rerr error
		once.Do(func() {
			rerr = releaseScript.Run(ctx, r.Client, []string{key}, token).Err()
			if errors.Is(rerr, redis.Nil) {
				rerr = nil
			}
		})
		return rerr
	}, nil
}

/* =========================
   Local (single instance / dev / test)
========================= */

type Local struct {
	mu   sync.Mutex
	held map[string]time.Time // scope → expiry
	now  func() time.Time
}

func NewLocal() *Local {
	return &Local{held: map[string]time.Time{}, now: time.Now}
}

func (l *Local) Acquire(_ context.Context, scope string, ttl time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if exp, ok := l.held[scope]; ok && now.Before(exp) {
		return nil, ErrBusy
	}
	exp := now.Add(ttl)
	l.held[scope] = exp

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// hanya hapus kalau belum diambil ulang setelah expired
			if cur, ok := l.held[scope]; ok && cur.Equal(exp) {
				delete(l.held, scope)
			}
		})
		return nil
	}, nil
}

// FromAddr: Redis kalau addr diisi, selain itu Local.
func FromAddr(addr string) Locker {
	if addr == "" {
		return NewLocal()
	}
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
}
