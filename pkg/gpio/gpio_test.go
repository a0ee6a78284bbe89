package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordPin struct {
	levels []Level
}

func (r *recordPin) Set(l Level) { r.levels = append(r.levels, l) }

func TestWithPolarity_Normal(t *testing.T) {
	rec := &recordPin{}
	p := WithPolarity(rec, false)

	p.Set(High)
	p.Set(Low)

	assert.Equal(t, []Level{High, Low}, rec.levels)
}

func TestWithPolarity_Inverted(t *testing.T) {
	rec := &recordPin{}
	p := WithPolarity(rec, true)

	p.Set(High)
	p.Set(Low)

	assert.Equal(t, []Level{Low, High}, rec.levels)
}

func TestNop(t *testing.T) {
	// Just must not panic.
	assert.NotPanics(t, func() {
		Nop{}.Set(High)
		Nop{}.Set(Low)
	})
}
