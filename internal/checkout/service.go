package checkout

import (
	"context"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/money"
)

type recorder interface {
	IncCheckoutLink()
	IncCheckoutRejection(reason string)
}

// Order is the outcome of a successful checkout.
type Order struct {
	URL        string `json:"url"`
	Message    string `json:"message"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int64  `json:"totalPrice"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Catalog *catalog.Catalog
	Format  money.Formatter
	Logger  *logger.Logger
	Metrics recorder
}

// Service composes checkout links for a catalog.
type Service struct {
	catalog   *catalog.Catalog
	formatter *Formatter
	logg      *logger.Logger
	metrics   recorder
}

func NewService(params ServiceParams) *Service {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		catalog:   params.Catalog,
		formatter: NewFormatter(params.Catalog, params.Format),
		logg:      logg,
		metrics:   params.Metrics,
	}
}

// Formatter exposes the line and total renderer bound to the catalog.
func (s *Service) Formatter() *Formatter {
	return s.formatter
}

// Summarize renders c against the catalog minimum.
func (s *Service) Summarize(c cart.Cart) Summary {
	return s.formatter.Summarize(c, s.catalog.MinPurchase())
}

// Checkout gates the cart and buyer and, when eligible, builds the order link.
// It never contacts the messaging service.
func (s *Service) Checkout(ctx context.Context, c cart.Cart, buyer BuyerInfo) (Order, error) {
	totalItems := cart.TotalItems(c)
	if err := Check(totalItems, s.catalog.MinPurchase(), buyer); err != nil {
		reason := RejectionReason(err)
		if s.metrics != nil {
			s.metrics.IncCheckoutRejection(reason)
		}
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"reason": reason, "total_items": totalItems}), "checkout.rejected")
		return Order{}, err
	}

	message := s.formatter.Message(s.catalog.Messages().OrderMessage, c, buyer)
	order := Order{
		URL:        WhatsAppURL(s.catalog.StoreInfo().WhatsappNumber, message),
		Message:    message,
		TotalItems: totalItems,
		TotalPrice: cart.TotalPrice(c, s.catalog),
	}
	if s.metrics != nil {
		s.metrics.IncCheckoutLink()
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"lines": len(c), "total_items": totalItems}), "checkout.link_composed")
	return order, nil
}
