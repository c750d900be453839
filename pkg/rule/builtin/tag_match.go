package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
)

// TagMatchRule fires when an effect tag equals one of "tags" or starts with
// one of "prefixes".
type TagMatchRule struct {
	base
	tags     map[string]struct{}
	prefixes []string
}

// NewTagMatchRule creates a tag match rule. At least one tag or prefix is required.
func NewTagMatchRule(cfg rule.Config) (*TagMatchRule, error) {
	tags := make(map[string]struct{})
	for _, tag := range cfg.Parameters.Strings("tags") {
		tags[tag] = struct{}{}
	}
	prefixes := cfg.Parameters.Strings("prefixes")
	if len(tags) == 0 && len(prefixes) == 0 {
		return nil, fmt.Errorf("tag_match needs tags or prefixes")
	}

	return &TagMatchRule{
		base:     newBase(cfg),
		tags:     tags,
		prefixes: prefixes,
	}, nil
}

// Evaluate matches the signal's effect tag.
func (r *TagMatchRule) Evaluate(ctx context.Context, sig signal.Signal) (*rule.Trigger, error) {
	tag := signal.Tag(sig)
	if tag == "" || !r.matches(tag) {
		return nil, nil
	}
	return rule.NewTrigger(r.ID(), r.cfg.Priority, sig, "effect "+tag), nil
}

func (r *TagMatchRule) matches(tag string) bool {
	if _, ok := r.tags[tag]; ok {
		return true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(tag, prefix) {
			return true
		}
	}
	return false
}
