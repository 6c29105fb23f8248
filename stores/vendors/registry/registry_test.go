package registry

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
	"github.com/specieverse/goapi/domain/asset"
	mAsset "github.com/specieverse/goapi/domain/asset/mocks"
	"github.com/specieverse/goapi/domain/vendors"
	mVendor "github.com/specieverse/goapi/domain/vendors/mocks"
)

type registrySuite struct {
	suite.Suite

	assets  *mAsset.Repo
	species *vendor.Bundle
	gallery *vendor.Bundle
	im      vendor.Registry
}

func (s *registrySuite) SetupTest() {
	s.assets = &mAsset.Repo{}
	s.species = &vendor.Bundle{
		Name:      domain.VendorSpecies,
		Orders:    &mVendor.OrderService{},
		Bids:      &mVendor.BidService{},
		Buys:      &mVendor.BuyService{},
		Contracts: &mVendor.ContractService{},
	}
	s.gallery = &vendor.Bundle{
		Name:      domain.VendorGallery,
		Orders:    &mVendor.OrderService{},
		Contracts: &mVendor.ContractService{},
	}
	s.im = New(s.assets, s.species, s.gallery)
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(registrySuite))
}

func (s *registrySuite) TestResolve() {
	b, err := s.im.Resolve(domain.VendorSpecies)
	s.NoError(err)
	s.Equal(s.species, b)

	_, err = s.im.Resolve("bogus")
	s.Equal(domain.ErrUnknownVendor, err)
}

func (s *registrySuite) TestResolveAsset() {
	id := asset.Id{ChainId: 1, ContractAddress: "0xabc", TokenId: "1"}
	s.assets.On("FindOne", mock.Anything, id).Return(&asset.Asset{
		ChainId:         1,
		ContractAddress: "0xabc",
		TokenId:         "1",
		Category:        "artwork",
	}, nil)

	b, err := s.im.ResolveAsset(ctx.Background(), id)
	s.NoError(err)
	s.Equal(s.gallery, b)
}

func (s *registrySuite) TestResolveAssetExplicitVendor() {
	id := asset.Id{ChainId: 1, ContractAddress: "0xdef", TokenId: "2"}
	s.assets.On("FindOne", mock.Anything, id).Return(&asset.Asset{
		ChainId:         1,
		ContractAddress: "0xdef",
		TokenId:         "2",
		Category:        "artwork",
		Vendor:          domain.VendorSpecies,
	}, nil)

	b, err := s.im.ResolveAsset(ctx.Background(), id)
	s.NoError(err)
	s.Equal(s.species, b)
}

func (s *registrySuite) TestSupports() {
	s.True(s.species.Supports(vendor.CapabilityBuys))
	s.True(s.gallery.Supports(vendor.CapabilityOrders))
	s.False(s.gallery.Supports(vendor.CapabilityBids))
	s.False(s.gallery.Supports(vendor.CapabilityBuys))
}

func (s *registrySuite) TestNames() {
	s.Equal([]domain.VendorName{domain.VendorSpecies, domain.VendorGallery}, s.im.Names())
}
