package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/intransparency/talentsearch/internal/db"
)

// fixedWindow admits a hit while the counter is below ARGV[1]. The first
// admitted hit of a window sets the expiry, so an expired key restarts at 1.
// A rejected hit leaves the counter untouched.
var fixedWindow = rueidis.NewLuaScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
  return {0, current}
end
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {1, n}
`)

// HitFixedWindow records one hit for key and reports whether it was admitted
// together with the window's counter after the call.
func (s *Store) HitFixedWindow(
	ctx context.Context, key string, limit int, window time.Duration,
) (bool, int64, error) {
	res := fixedWindow.Exec(ctx, s.client,
		[]string{key},
		[]string{strconv.Itoa(limit), strconv.FormatInt(window.Milliseconds(), 10)},
	)
	vals, err := res.ToArray()
	if err != nil {
		return false, 0, &db.Error{Op: db.OpWindow, Err: err}
	}
	if len(vals) != 2 {
		return false, 0, &db.Error{Op: db.OpWindow, Err: fmt.Errorf("%w: %d values", db.ErrUnexpectedReply, len(vals))}
	}
	admitted, err := vals[0].AsInt64()
	if err != nil {
		return false, 0, &db.Error{Op: db.OpWindow, Err: err}
	}
	count, err := vals[1].AsInt64()
	if err != nil {
		return false, 0, &db.Error{Op: db.OpWindow, Err: err}
	}
	return admitted == 1, count, nil
}
