package registry

import (
	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/log"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	"github.com/specieverse/goapi/domain/vendors"
)

type impl struct {
	bundles map[domain.VendorName]*vendor.Bundle
	names   []domain.VendorName
	assets  asset.Repo
}

// New builds the registry from a fixed bundle set. Registration happens
// once at startup; lookups afterwards are read-only.
func New(assets asset.Repo, bundles ...*vendor.Bundle) vendor.Registry {
	m := make(map[domain.VendorName]*vendor.Bundle, len(bundles))
	names := make([]domain.VendorName, 0, len(bundles))
	for _, b := range bundles {
		if _, ok := m[b.Name]; ok {
			continue
		}
		m[b.Name] = b
		names = append(names, b.Name)
	}
	return &impl{
		bundles: m,
		names:   names,
		assets:  assets,
	}
}

func (im *impl) Resolve(name domain.VendorName) (*vendor.Bundle, error) {
	b, ok := im.bundles[name]
	if !ok {
		return nil, domain.ErrUnknownVendor
	}
	return b, nil
}

func (im *impl) ResolveAsset(ctx ctx.Ctx, id asset.Id) (*vendor.Bundle, error) {
	a, err := im.assets.FindOne(ctx, id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to assets.FindOne")
		return nil, err
	}

	name := a.Vendor
	if name == "" {
		name = domain.CategoryToVendor[a.Category]
	}
	return im.Resolve(name)
}

func (im *impl) Names() []domain.VendorName {
	res := make([]domain.VendorName, len(im.names))
	copy(res, im.names)
	return res
}
