package test

import (
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	pkgAuth "github.com/devxankit/Electrici-toys/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(model.Actor) (string, error)
	ParseFn func(string) (model.Actor, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(actor model.Actor) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(actor)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{UserID: "user-1", Role: model.RoleUser}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract. Tokens
// listed in Tokens resolve to their actor; any other token resolves to Actor
// unless Err is set.
type TokenParserStub struct {
	Actor  model.Actor
	Tokens map[string]model.Actor
	Err    error
}

// ParseToken either resolves a known token or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Actor, error) {
	if actor, ok := s.Tokens[token]; ok {
		return actor, nil
	}
	if s.Err != nil {
		return model.Actor{}, s.Err
	}
	return s.Actor, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
