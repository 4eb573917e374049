package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// New creates a Firestore-based scan history. An empty databaseID selects
// the default database.
func New(ctx context.Context, projectID, databaseID string, options ...option.ClientOption) (interfaces.ScanRepository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID, options...)
	} else {
		client, err = firestore.NewClient(ctx, projectID, options...)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &scanRepository{
		client: client,
	}, nil
}
