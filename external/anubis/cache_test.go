package anubis

import (
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(200*time.Millisecond, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
}

func TestPrincipalCache_Expired(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(20*time.Millisecond, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	time.Sleep(40 * time.Millisecond)

	if _, ok := cache.Get("k1"); ok {
		t.Fatal("expected cache miss after expiry")
	}
}

func TestPrincipalCache_ZeroTTLDisablesCaching(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(0, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})

	if _, ok := cache.Get("k1"); ok {
		t.Fatal("a zero ttl cache should never store entries")
	}
}

func TestPrincipalCache_EvictsAtCapacity(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 3)
	for i := 0; i < 4; i++ {
		key := "k" + strconv.Itoa(i)
		cache.Set(key, user.Principal{UserID: key})
	}

	stored := 0
	for i := 0; i < 4; i++ {
		if _, ok := cache.Get("k" + strconv.Itoa(i)); ok {
			stored++
		}
	}
	if stored != 3 {
		t.Fatalf("cache holds %d entries, want the capacity of 3", stored)
	}
}
