package provider

import (
	"sort"
	"strings"
	"sync"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
)

type tokenProviderImpl struct {
	inner  port.TokenProvider
	logger port.Logger

	mu          sync.Mutex
	tokensCache map[string]map[string][]entity.TokenInfo // ключ - отсортированный список сетей
}

// NewTokenProvider caches the token lists returned by inner per set of active networks.
// Token files are read once per process.
func NewTokenProvider(inner port.TokenProvider, logger port.Logger) port.TokenProvider {
	return &tokenProviderImpl{
		inner:       inner,
		logger:      logger,
		tokensCache: make(map[string]map[string][]entity.TokenInfo),
	}
}

func (p *tokenProviderImpl) GetTokensByNetwork(activeNetworkDefs []entity.NetworkDefinition) (map[string][]entity.TokenInfo, error) {
	key := cacheKey(activeNetworkDefs)

	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.tokensCache[key]; ok {
		return cached, nil
	}

	tokens, err := p.inner.GetTokensByNetwork(activeNetworkDefs)
	if err != nil {
		p.logger.Error("Failed to load tokens", "error", err)
		return nil, err
	}
	p.tokensCache[key] = tokens
	p.logger.Info("Tokens loaded and cached", "networks_with_tokens", len(tokens))
	return tokens, nil
}

func cacheKey(defs []entity.NetworkDefinition) string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = string(d.Identifier)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
