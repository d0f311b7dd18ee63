// Package auth resolves the caller of a request to a profile.
//
// HeaderResolver trusts the numeric profile_id header as-is; it identifies
// the caller but does not authenticate them. TokenResolver requires a signed
// bearer token instead. Both satisfy Resolver, so the scheme can change
// without touching the payment code.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
)

const ProfileHeader = "profile_id"

var (
	ErrMissingIdentity = errors.New("missing profile identity")
	ErrUnknownIdentity = errors.New("unknown profile")
	ErrInvalidToken    = errors.New("invalid access token")
)

type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (*model.Profile, error)
}

type ProfileLookup interface {
	GetByID(ctx context.Context, id uint) (*model.Profile, error)
}

type HeaderResolver struct {
	profiles ProfileLookup
}

func NewHeaderResolver(profiles ProfileLookup) *HeaderResolver {
	return &HeaderResolver{profiles: profiles}
}

func (h *HeaderResolver) Resolve(ctx context.Context, r *http.Request) (*model.Profile, error) {
	raw := strings.TrimSpace(r.Header.Get(ProfileHeader))
	if raw == "" {
		return nil, ErrMissingIdentity
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, ErrUnknownIdentity
	}
	return lookup(ctx, h.profiles, uint(id))
}

type TokenResolver struct {
	parser   *Parser
	profiles ProfileLookup
}

func NewTokenResolver(parser *Parser, profiles ProfileLookup) *TokenResolver {
	return &TokenResolver{parser: parser, profiles: profiles}
}

func (t *TokenResolver) Resolve(ctx context.Context, r *http.Request) (*model.Profile, error) {
	header := r.Header.Get("Authorization")
	if len(header) <= 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return nil, ErrMissingIdentity
	}
	id, err := t.parser.Parse(strings.TrimSpace(header[7:]))
	if err != nil {
		return nil, err
	}
	return lookup(ctx, t.profiles, id)
}

func lookup(ctx context.Context, profiles ProfileLookup, id uint) (*model.Profile, error) {
	profile, err := profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownIdentity
		}
		return nil, err
	}
	return profile, nil
}
