package services

import (
	"math/rand"
	"sync"
	"time"
)

// Picker returns one uniformly random element of a fixed finite set while
// avoiding immediate repetition of the previous selection. Used for the
// morning fallback greetings and the valentine "why I love you" reasons.
// Non-deterministic by design; tests inject a seeded source.
type Picker struct {
	mu    sync.Mutex
	items []string
	last  int
	rng   *rand.Rand
}

// NewPicker creates a picker over items. A nil source seeds from the clock.
func NewPicker(items []string, src rand.Source) *Picker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Picker{
		items: items,
		last:  -1,
		rng:   rand.New(src),
	}
}

// Next returns the next selection. With a single-element set it always
// returns that element; otherwise the previous pick is never repeated.
func (p *Picker) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.items) == 0 {
		return ""
	}
	if len(p.items) == 1 {
		p.last = 0
		return p.items[0]
	}

	i := p.rng.Intn(len(p.items))
	for i == p.last {
		i = p.rng.Intn(len(p.items))
	}
	p.last = i
	return p.items[i]
}

// FallbackGreetings is the local pool used when no morning message exists
// for today's date.
var FallbackGreetings = []string{
	"Good morning, gentle soul.\nYou don't need to rush today. You are enough.",
	"Rise softly, dear one.\nThe world can wait while you find your center.",
	"A new day unfolds.\nTake it one breath at a time.",
	"Good morning, beautiful.\nYou deserve to start this day with kindness to yourself.",
	"The sun rises for you.\nThere's no wrong way to begin.",
	"Wake gently, dear heart.\nToday is a new page, write it with love.",
	"Good morning, princess.\nYour worth isn't measured by your productivity.",
	"Another day to simply be.\nThat's more than enough.",
}

// LoveReasons backs the valentine microsite's reason generator.
var LoveReasons = []string{
	"Because your love feels like coming home after the longest day.",
	"Because I never knew what forever meant until I met you.",
	"Because you love me even when I forget to love myself.",
	"Because you are the most beautiful thing that ever happened to my life.",
	"Because no matter how far apart we are, my heart always finds its way to you.",
	"Because you see all of me and you stay.",
	"Because with you, love feels peaceful.",
}

// GreetingPicker and ReasonPicker are the process-wide selectors.
var (
	GreetingPicker = NewPicker(FallbackGreetings, nil)
	ReasonPicker   = NewPicker(LoveReasons, nil)
)
