// Command account-status changes the account status of a user by email
// address, for example to suspend an account from the command line.
// Suspending or deleting an account removes its participations, likes,
// saves and notifications.
//
// Usage:
//
//	account-status --email=user@example.com --status=SUSPENDED
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/engagement"
	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/participation"
	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/eventhub-backend/internal/app"
	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/identity"
)

func main() {
	email := flag.String("email", "", "email of the account")
	status := flag.String("status", "", "new status: ACTIVE, VERIFIED, SUSPENDED or DELETED")
	flag.Parse()

	if *email == "" || *status == "" {
		fmt.Fprintln(os.Stderr, "Usage: account-status --email=user@example.com --status=SUSPENDED")
		os.Exit(1)
	}

	if err := run(*email, *status); err != nil {
		fmt.Fprintf(os.Stderr, "account-status: %v\n", err)
		os.Exit(1)
	}
}

func run(email, status string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := identity.NewService(logger,
		user.New(pool),
		participation.New(pool),
		engagement.New(pool),
		notification.New(pool),
		postgres.NewTxManager(pool),
		cfg.Identity,
	)

	account, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	next := domain.AccountStatus(strings.ToUpper(strings.TrimSpace(status)))
	updated, err := svc.SetAccountStatus(ctx, account.User.ID, next)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	fmt.Printf("Account %q is now %s.\n", updated.Email, updated.Status)
	return nil
}
