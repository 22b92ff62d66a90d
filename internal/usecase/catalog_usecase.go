package usecase

import (
	"context"
	"fmt"

	"placement-pro/internal/domain/skillgap"
)

type RoleLevel struct {
	Skill string
	Level int
}

type RoleItem struct {
	Name    string
	Default bool
	Levels  []RoleLevel
}

type CatalogInfo struct {
	Source      string
	Fingerprint string
	Dimensions  int
	Profiles    int
}

type CatalogUsecase interface {
	ListDimensions(ctx context.Context) ([]skillgap.Dimension, error)
	ListRoles(ctx context.Context) ([]RoleItem, error)
	Info(ctx context.Context) (CatalogInfo, error)
}

type Catalog struct {
	provider CatalogProvider
}

func NewCatalogUsecase(provider CatalogProvider) *Catalog {
	return &Catalog{provider: provider}
}

func (u *Catalog) load(ctx context.Context) (*skillgap.Catalog, string, error) {
	if u.provider == nil {
		return nil, "", ErrCatalogUnavailable
	}
	snap, err := u.provider.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return snap.Catalog, snap.Source, nil
}

func (u *Catalog) ListDimensions(ctx context.Context) ([]skillgap.Dimension, error) {
	c, _, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Dimensions(), nil
}

func (u *Catalog) ListRoles(ctx context.Context) ([]RoleItem, error) {
	c, _, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	dims := c.Dimensions()
	def := c.DefaultProfile().Name
	out := make([]RoleItem, 0, len(c.Profiles()))
	for _, p := range c.Profiles() {
		levels := make([]RoleLevel, 0, len(dims))
		for i, d := range dims {
			levels = append(levels, RoleLevel{Skill: d.Name, Level: p.Levels[i]})
		}
		out = append(out, RoleItem{Name: p.Name, Default: p.Name == def, Levels: levels})
	}
	return out, nil
}

func (u *Catalog) Info(ctx context.Context) (CatalogInfo, error) {
	c, source, err := u.load(ctx)
	if err != nil {
		return CatalogInfo{}, err
	}
	return CatalogInfo{
		Source:      source,
		Fingerprint: c.Fingerprint(),
		Dimensions:  c.Len(),
		Profiles:    len(c.Profiles()),
	}, nil
}
