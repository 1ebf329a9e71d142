package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

const separator = "|"

// HMACStrategy implements auth token creation/verification using HMAC signatures.
// A token is base64url("userID|role|expires|signature").
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates a signed token for the actor.
func (s *HMACStrategy) IssueToken(actor model.Actor) (string, error) {
	if actor.UserID == "" || strings.Contains(actor.UserID, separator) {
		return "", fmt.Errorf("issue token: invalid user id %q", actor.UserID)
	}
	role := actor.Role
	if role == "" {
		role = model.RoleUser
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := strings.Join([]string{actor.UserID, string(role), strconv.FormatInt(expires, 10)}, separator)
	token := payload + separator + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates the token and returns the actor it was issued for.
func (s *HMACStrategy) ParseToken(token string) (model.Actor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return model.Actor{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), separator)
	if len(parts) != 4 {
		return model.Actor{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], separator)
	expectedSig := s.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[3])) {
		return model.Actor{}, ErrInvalidToken
	}

	if parts[0] == "" {
		return model.Actor{}, ErrInvalidToken
	}

	role := model.Role(parts[1])
	if role != model.RoleUser && role != model.RoleAdmin {
		return model.Actor{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Actor{}, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(s.now()) {
		return model.Actor{}, ErrInvalidToken
	}

	return model.Actor{UserID: parts[0], Role: role}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
