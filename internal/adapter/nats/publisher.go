package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ammarmusa/travel-app-backend/internal/config"
	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	WishlistCreatedSubject = "wishlist.created"
	WishlistUpdatedSubject = "wishlist.updated"
	WishlistDeletedSubject = "wishlist.deleted"
)

type Publisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

type DeletedEventPayload struct {
	ID string `json:"id"`
}

func NewNATSPublisher(cfg *config.NATSConfig, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: log.Named("NATSPublisher")}, nil
}

func (p *Publisher) PublishWishlistCreated(ctx context.Context, wishlist *entity.Wishlist) error {
	return p.publish(WishlistCreatedSubject, wishlist, wishlist.ID)
}

func (p *Publisher) PublishWishlistUpdated(ctx context.Context, wishlist *entity.Wishlist) error {
	return p.publish(WishlistUpdatedSubject, wishlist, wishlist.ID)
}

func (p *Publisher) PublishWishlistDeleted(ctx context.Context, wishlistID string) error {
	return p.publish(WishlistDeletedSubject, DeletedEventPayload{ID: wishlistID}, wishlistID)
}

func (p *Publisher) publish(subject string, payload interface{}, wishlistID string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal payload for NATS publishing",
			zap.Error(err),
			zap.String("wishlist_id", wishlistID),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject),
			zap.Error(err),
			zap.String("wishlist_id", wishlistID),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Debug("Published NATS message",
		zap.String("subject", subject),
		zap.String("wishlist_id", wishlistID),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
	}
}
