package ticket

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextTicket_Formato(t *testing.T) {
	g := &Generator{now: func() time.Time { return time.UnixMilli(1700000000123) }}
	got := g.NextTicket("TICKET")
	assert.Regexp(t, regexp.MustCompile(`^TICKET-1700000000123-[0-9A-F]{4}$`), got)
}

func TestNextTicket_MismoInstanteDistintoSufijo(t *testing.T) {
	g := &Generator{now: func() time.Time { return time.UnixMilli(1) }}
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		seen[g.NextTicket("REP")] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
