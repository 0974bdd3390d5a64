package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"cloud.google.com/go/firestore"
	"github.com/papudim/sales-report/pkg/model"
	"google.golang.org/api/iterator"
)

// OrderRepository reads order documents from Firestore.
type OrderRepository struct {
	client     *firestore.Client
	collection string
}

func NewOrderRepository(client *firestore.Client, collection string) *OrderRepository {
	return &OrderRepository{client: client, collection: collection}
}

// Orders streams every document of the collection as a decoded record.
// Documents are fetched lazily; breaking out of the loop stops the query.
// The sequence ends after the first error.
func (r *OrderRepository) Orders(ctx context.Context) iter.Seq2[model.OrderRecord, error] {
	return func(yield func(model.OrderRecord, error) bool) {
		docs := r.client.Collection(r.collection).Documents(ctx)
		defer docs.Stop()
		for {
			doc, err := docs.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				yield(model.OrderRecord{}, fmt.Errorf("%w: iterate %s: %w", model.ErrSourceUnavailable, r.collection, err))
				return
			}
			rec, err := DecodeOrder(doc.Ref.ID, doc.Data())
			if err != nil {
				yield(model.OrderRecord{}, fmt.Errorf("decode %s/%s: %w", r.collection, doc.Ref.ID, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Get loads one order by document ID and returns both the decoded record
// and the raw document data.
func (r *OrderRepository) Get(ctx context.Context, id string) (model.OrderRecord, map[string]any, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		return model.OrderRecord{}, nil, fmt.Errorf("get %s/%s: %w", r.collection, id, err)
	}
	data := snap.Data()
	rec, err := DecodeOrder(snap.Ref.ID, data)
	if err != nil {
		return model.OrderRecord{}, data, fmt.Errorf("decode %s/%s: %w", r.collection, id, err)
	}
	return rec, data, nil
}
