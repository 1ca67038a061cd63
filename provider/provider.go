package provider

import (
	"encoding/json"
	"time"

	"github.com/suffixlab/suffixd/common/singledo"
	"github.com/suffixlab/suffixd/component/psl"
	"github.com/suffixlab/suffixd/component/resource"
	"github.com/suffixlab/suffixd/component/trie"
	types "github.com/suffixlab/suffixd/constant/provider"
	"github.com/suffixlab/suffixd/log"
)

const forceRefreshWait = time.Second * 30

// SuffixProvider feeds the resolver with rule sets pulled through its
// vehicle, on startup and on every refresh
type SuffixProvider struct {
	*resource.Fetcher[[]trie.Rule]
	resolver *psl.Resolver
	single   *singledo.Single[struct{}]
}

func (sp *SuffixProvider) Initial() error {
	_, err := sp.Fetcher.Initial()
	return err
}

func (sp *SuffixProvider) Update() error {
	_, _, err := sp.Fetcher.Update()
	return err
}

// ForceRefresh collapses concurrent refresh requests into one pull
func (sp *SuffixProvider) ForceRefresh() error {
	_, err, _ := sp.single.Do(func() (struct{}, error) {
		return struct{}{}, sp.Update()
	})
	return err
}

func (sp *SuffixProvider) RuleCount() int {
	return sp.resolver.RuleCount()
}

func (sp *SuffixProvider) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"name":        sp.Name(),
		"vehicleType": sp.VehicleType().String(),
		"ruleCount":   sp.RuleCount(),
		"updatedAt":   sp.UpdatedAt(),
	})
}

var _ types.Provider = (*SuffixProvider)(nil)

func NewSuffixProvider(name string, vehicle types.Vehicle, interval time.Duration, opt psl.ParseOption, resolver *psl.Resolver) *SuffixProvider {
	sp := &SuffixProvider{
		resolver: resolver,
		single:   singledo.NewSingle[struct{}](forceRefreshWait),
	}

	onUpdate := func(rules []trie.Rule) {
		if err := resolver.Store(rules); err != nil {
			log.Errorln("[SuffixList] store rules error: %s", err.Error())
			return
		}
		log.Infoln("[SuffixList] %s updated, %d rules", name, resolver.RuleCount())
	}

	parser := func(buf []byte) ([]trie.Rule, error) {
		return psl.Parse(buf, opt)
	}

	sp.Fetcher = resource.NewFetcher(name, interval, vehicle, parser, onUpdate)
	return sp
}
