package blocking

import (
	"errors"
	"fmt"
	"mindful/internal/providers"
	"mindful/internal/structures"
	"net/url"
	"strings"

	"go.uber.org/atomic"
)

// DefaultRuleSetID is the rule set toggled by the extension switch.
const DefaultRuleSetID = "mindful_blocking_rules"

var ErrUnknownRuleSet = errors.New("unknown rule set")

type RuleSetManagerInterface interface {
	UpdateEnabledRulesets(enable, disable []string) error
	IsEnabled(id string) bool
	Match(rawURL string) (string, bool)
}

type ruleSet struct {
	id      string
	enabled atomic.Bool
	domains []string
}

// matches reports whether host equals one of the domains or is a subdomain of one.
func (rs *ruleSet) matches(host string) bool {
	for _, d := range rs.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// RuleSetManager holds the configured rule sets. The set of ids is fixed at
// construction; only the enabled flags change afterwards.
type RuleSetManager struct {
	order  []string
	byID   map[string]*ruleSet
	logger providers.Logger
}

func NewRuleSetManager(conf *structures.Config, logger providers.Logger) RuleSetManagerInterface {
	m := &RuleSetManager{
		byID:   make(map[string]*ruleSet),
		logger: logger,
	}
	for _, c := range conf.Blocking.RuleSets {
		rs := &ruleSet{id: c.ID, domains: normalizeDomains(c.Domains)}
		rs.enabled.Store(c.Enabled)
		m.byID[c.ID] = rs
		m.order = append(m.order, c.ID)
	}
	if _, ok := m.byID[DefaultRuleSetID]; !ok {
		rs := &ruleSet{id: DefaultRuleSetID}
		rs.enabled.Store(true)
		m.byID[DefaultRuleSetID] = rs
		m.order = append(m.order, DefaultRuleSetID)
	}
	return m
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "www.")
		d = strings.TrimSuffix(d, ".")
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// UpdateEnabledRulesets validates every id before changing any flag.
func (m *RuleSetManager) UpdateEnabledRulesets(enable, disable []string) error {
	for _, id := range append(append([]string{}, enable...), disable...) {
		if _, ok := m.byID[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRuleSet, id)
		}
	}
	for _, id := range enable {
		m.byID[id].enabled.Store(true)
		m.logger.Infof(providers.TypeApp, "Rule set %s enabled", id)
	}
	for _, id := range disable {
		m.byID[id].enabled.Store(false)
		m.logger.Infof(providers.TypeApp, "Rule set %s disabled", id)
	}
	return nil
}

func (m *RuleSetManager) IsEnabled(id string) bool {
	rs, ok := m.byID[id]
	return ok && rs.enabled.Load()
}

// Match returns the first enabled rule set whose domains cover the URL host.
func (m *RuleSetManager) Match(rawURL string) (string, bool) {
	host := hostOf(rawURL)
	if host == "" {
		return "", false
	}
	for _, id := range m.order {
		rs := m.byID[id]
		if rs.enabled.Load() && rs.matches(host) {
			return id, true
		}
	}
	return "", false
}

func hostOf(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}
