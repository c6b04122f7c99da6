package connection

import (
	"sync"
	"testing"
)

func TestTokenStore(t *testing.T) {
	s := NewTokenStore()
	if s.Token() != "" {
		t.Error("new store should be empty")
	}

	s.Set("tok1")
	if s.Token() != "tok1" {
		t.Errorf("Token() = %q, want tok1", s.Token())
	}

	s.Set("tok2")
	if s.Token() != "tok2" {
		t.Errorf("Set should overwrite, got %q", s.Token())
	}

	s.Clear()
	if s.Token() != "" {
		t.Errorf("Clear() left %q", s.Token())
	}
}

func TestTokenStore_ConcurrentAccess(t *testing.T) {
	s := NewTokenStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("tok")
		}()
		go func() {
			defer wg.Done()
			_ = s.Token()
		}()
	}
	wg.Wait()
	if s.Token() != "tok" {
		t.Errorf("Token() = %q", s.Token())
	}
}

func TestStaticToken(t *testing.T) {
	var src TokenSource = StaticToken("abc")
	if src.Token() != "abc" {
		t.Errorf("Token() = %q", src.Token())
	}
}
