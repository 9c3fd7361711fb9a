package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/intransparency/talentsearch/internal/db"
)

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	err := s.Ping(context.Background())
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPing {
		t.Fatalf("expected *db.Error with op PING, got %v", err)
	}
}

func isWindowScript(key, limit, windowMs string) func(cmd []string) bool {
	return func(cmd []string) bool {
		if len(cmd) != 6 || (cmd[0] != "EVALSHA" && cmd[0] != "EVAL") {
			return false
		}
		return cmd[2] == "1" && cmd[3] == key && cmd[4] == limit && cmd[5] == windowMs
	}
}

func TestHitFixedWindow_Admitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(isWindowScript("rl:1.2.3.4", "30", "3600000"))).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(1), mock.RedisInt64(1))))

	s := NewStoreForTest(c)
	ok, count, err := s.HitFixedWindow(context.Background(), "rl:1.2.3.4", 30, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || count != 1 {
		t.Errorf("got admitted=%v count=%d, want true 1", ok, count)
	}
}

func TestHitFixedWindow_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(isWindowScript("k", "30", "3600000"))).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0), mock.RedisInt64(30))))

	s := NewStoreForTest(c)
	ok, count, err := s.HitFixedWindow(context.Background(), "k", 30, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected rejection at the limit")
	}
	if count != 30 {
		t.Errorf("count = %d, want 30", count)
	}
}

func TestHitFixedWindow_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(errors.New("connection refused")))

	s := NewStoreForTest(c)
	_, _, err := s.HitFixedWindow(context.Background(), "k", 30, time.Hour)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpWindow {
		t.Fatalf("expected *db.Error with window op, got %v", err)
	}
}

func TestHitFixedWindow_UnexpectedReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(1))))

	s := NewStoreForTest(c)
	_, _, err := s.HitFixedWindow(context.Background(), "k", 30, time.Hour)
	if !errors.Is(err, db.ErrUnexpectedReply) {
		t.Fatalf("expected ErrUnexpectedReply, got %v", err)
	}
}
