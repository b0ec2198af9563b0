package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeServer answers the commands LoginThrottle sends without a network.
// EVALSHA of the failure script is applied the way the script behaves on a
// server: increment, then set the TTL only when the key has none.
type fakeServer struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
	cmds   [][]any
}

func newFakeClient(t *testing.T) (*redis.Client, *fakeServer) {
	t.Helper()
	f := &fakeServer{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "fake:6379"})
	client.AddHook(f)
	t.Cleanup(func() { _ = client.Close() })
	return client, f
}

func (f *fakeServer) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeServer) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeServer) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		args := cmd.Args()
		f.cmds = append(f.cmds, args)

		switch cmd.Name() {
		case "get":
			n, ok := f.counts[args[1].(string)]
			if !ok {
				cmd.SetErr(redis.Nil)
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(strconv.FormatInt(n, 10))
		case "del":
			key := args[1].(string)
			delete(f.counts, key)
			delete(f.ttls, key)
			cmd.(*redis.IntCmd).SetVal(1)
		case "evalsha":
			key := args[3].(string)
			f.counts[key]++
			if _, ok := f.ttls[key]; !ok {
				f.ttls[key] = time.Duration(args[4].(int64)) * time.Millisecond
			}
			cmd.(*redis.Cmd).SetVal(f.counts[key])
		default:
			err := fmt.Errorf("unexpected command %v", args)
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func (f *fakeServer) ttl(key string) (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.ttls[key]
	return d, ok
}
