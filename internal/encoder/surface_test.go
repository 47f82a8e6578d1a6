package encoder

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfacePool_Acquire(t *testing.T) {
	p := NewSurfacePool(0)
	s, err := p.Acquire(30, 20)
	require.NoError(t, err)

	assert.Equal(t, 30, s.Bounds().Dx())
	assert.Equal(t, 20, s.Bounds().Dy())
	assert.Len(t, s.Pix, 30*20*4)
	assert.Equal(t, 1, p.Live())

	s.Release()
	s.Release() // second release is a no-op
	assert.Equal(t, 0, p.Live())
}

func TestSurfacePool_ReusedBufferIsCleared(t *testing.T) {
	p := NewSurfacePool(0)
	s, err := p.Acquire(8, 8)
	require.NoError(t, err)
	for i := range s.Pix {
		s.Pix[i] = 0xff
	}
	s.Release()

	s2, err := p.Acquire(4, 4)
	require.NoError(t, err)
	defer s2.Release()
	for i, b := range s2.Pix {
		if b != 0 {
			t.Fatalf("pix[%d] = %#x, want 0", i, b)
		}
	}
}

func TestSurfacePool_Rejects(t *testing.T) {
	p := NewSurfacePool(1000)

	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}, {100, 11}} {
		_, err := p.Acquire(size[0], size[1])
		assert.ErrorIs(t, err, ErrSurfaceUnavailable, "size %v", size)
	}
	assert.Equal(t, 0, p.Live())
}

func TestSurfacePool_Concurrent(t *testing.T) {
	p := NewSurfacePool(0)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s, err := p.Acquire(16+n, 16)
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			s.Pix[0] = byte(n)
			s.Release()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, p.Live())
}
