package id

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	assert.NotEqual(t, id1.String(), id2.String())
	assert.Equal(t, -1, id1.Compare(id2), "monotonic entropy keeps ids ordered")
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()
	assert.Len(t, gen.GenerateString(), 26)
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	value := gen.GenerateWithPrefix("proc")
	parts := strings.Split(value, "_")

	require.Len(t, parts, 2)
	assert.Equal(t, "proc", parts[0])
	assert.True(t, IsValid(parts[1]))
}

func TestNewInstanceID(t *testing.T) {
	before := time.Now().Add(-time.Second)
	instance := NewInstanceID()

	assert.True(t, strings.HasPrefix(instance.String(), "proc_"))

	ts, err := instance.Timestamp()
	require.NoError(t, err)
	assert.True(t, ts.After(before))
}

func TestDeterministicEntropy(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 64)
	a := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()
	b := NewGeneratorWithEntropy(bytes.NewReader(seed)).Generate()

	assert.Equal(t, a.Entropy(), b.Entropy())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(NewGenerator().GenerateString()))
	assert.False(t, IsValid("not-a-ulid"))
	assert.False(t, IsValid(""))

	_, err := Timestamp("bogus")
	assert.Error(t, err)
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const workers, perWorker = 8, 100

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				value := gen.GenerateString()
				mu.Lock()
				seen[value] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
