package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerformance_Add(t *testing.T) {
	p := &Performance{}
	for i := 0; i < samples+10; i++ {
		p.add(time.Duration(i))
	}

	assert.Len(t, p.frameTimes, samples)
	assert.Equal(t, time.Duration(10), p.frameTimes[0])
	assert.Equal(t, time.Duration(samples+9), p.frameTimes[samples-1])
}
