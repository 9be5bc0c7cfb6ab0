package app

import (
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/eventhub-backend/internal/adapter/docstore"
	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	engagementrepo "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/engagement"
	eventrepo "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/event"
	notificationrepo "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/notification"
	participationrepo "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/participation"
	subscriptionrepo "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/subscription"
	userrepo "github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/service/engagement"
	"github.com/heartmarshall/eventhub-backend/internal/service/event"
	"github.com/heartmarshall/eventhub-backend/internal/service/identity"
	"github.com/heartmarshall/eventhub-backend/internal/service/notification"
	"github.com/heartmarshall/eventhub-backend/internal/service/participation"
	"github.com/heartmarshall/eventhub-backend/internal/service/subscription"
)

// Services is the persistence core handed to the API layer and the worker.
type Services struct {
	Identity      *identity.Service
	Events        *event.Service
	Participation *participation.Service
	Engagement    *engagement.Service
	Subscriptions *subscription.Service
	Notifications *notification.Service
}

// DocumentStores are the read-only collections engagement targets live in.
type DocumentStores struct {
	ExternalEvents docstore.Store
	Posts          docstore.Store
}

// NewDocumentStores opens the external event and post collections of client.
// When rdb is not nil, summaries are cached in Redis. Existence checks always
// reach the collection, since pruning must not act on a stale answer.
func NewDocumentStores(logger *slog.Logger, client *docstore.Client, rdb *redis.Client, cfg *config.Config) DocumentStores {
	var (
		external docstore.Store = client.Collection(cfg.DocStore.ExternalEventsCollection)
		posts    docstore.Store = client.Collection(cfg.DocStore.PostsCollection)
	)
	if rdb != nil {
		external = docstore.NewCachedStore(external, rdb, cfg.Cache.TTL, cfg.DocStore.ExternalEventsCollection, logger)
		posts = docstore.NewCachedStore(posts, rdb, cfg.Cache.TTL, cfg.DocStore.PostsCollection, logger)
	}
	return DocumentStores{ExternalEvents: external, Posts: posts}
}

// NewServices wires the repositories on pool into the domain services. All
// services share one transaction manager, so a notification written by a
// producer joins the producer's transaction.
func NewServices(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool, stores DocumentStores) *Services {
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	events := eventrepo.New(pool)
	participations := participationrepo.New(pool)
	engagements := engagementrepo.New(pool)
	subscriptions := subscriptionrepo.New(pool)
	notifications := notificationrepo.New(pool)

	notifier := notification.NewService(logger, notifications, txm)
	seats := participation.NewService(logger, events, participations, notifier, txm)

	return &Services{
		Identity:      identity.NewService(logger, users, participations, engagements, notifications, txm, cfg.Identity),
		Events:        event.NewService(logger, events, users, participations, notifier, seats, txm),
		Participation: seats,
		Engagement:    engagement.NewService(logger, engagements, events, stores.ExternalEvents, stores.Posts, txm, cfg.Engagement),
		Subscriptions: subscription.NewService(logger, subscriptions, users, notifier, txm, cfg.Subscription),
		Notifications: notifier,
	}
}
