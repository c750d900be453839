package rule

import (
	"sync"
	"time"
)

// sweepAt is the number of tracked cooldowns above which expired entries
// are dropped on the next record.
const sweepAt = 4096

// cooldowns remembers until when each (rule, player) pair is muted.
type cooldowns struct {
	mu    sync.Mutex
	until map[string]time.Time
}

func newCooldowns() *cooldowns {
	return &cooldowns{until: make(map[string]time.Time)}
}

func cooldownKey(cfg *Cooldown, ruleID, userID string) string {
	if cfg.Scope == ScopeGlobal {
		return ruleID
	}
	return ruleID + "/" + userID
}

// admit reports whether the rule may fire at now and, if so, starts a new
// cooldown window.
func (c *cooldowns) admit(cfg *Cooldown, ruleID, userID string, now time.Time) bool {
	if cfg == nil || cfg.Duration <= 0 {
		return true
	}
	key := cooldownKey(cfg, ruleID, userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if until, ok := c.until[key]; ok && now.Before(until) {
		return false
	}
	if len(c.until) >= sweepAt {
		for k, until := range c.until {
			if !now.Before(until) {
				delete(c.until, k)
			}
		}
	}
	c.until[key] = now.Add(cfg.Duration)
	return true
}
