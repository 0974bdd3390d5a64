package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/papudim/sales-report/internal/platform/config"
	"github.com/papudim/sales-report/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// New creates a Firestore client using credentials provided via env (base64, file or inline fields).
// It returns the client and a description of which credential source was used.
func New(ctx context.Context, cfg config.Config) (*firestore.Client, string, error) {
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		return nil, "", err
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, "", fmt.Errorf("%w: init firestore client: %w", model.ErrSourceUnavailable, err)
	}
	return client, source, nil
}

// Ping performs a lightweight check by reading at most one document of the collection.
func Ping(ctx context.Context, client *firestore.Client, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := client.Collection(collection).Limit(1).Documents(ctx)
	defer docs.Stop()
	_, err := docs.Next()
	if err == nil || errors.Is(err, iterator.Done) {
		return nil
	}
	return fmt.Errorf("%w: ping %s: %w", model.ErrSourceUnavailable, collection, err)
}
