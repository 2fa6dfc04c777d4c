package githubclt

import (
	"context"
	"errors"
)

// Viewer returns the login of the identity the client is authenticated as.
func (clt *Client) Viewer(ctx context.Context) (string, error) {
	var q struct {
		Viewer struct {
			Login string
		}
	}

	if err := clt.graphQLClt.Query(ctx, &q, nil); err != nil {
		return "", clt.wrapGraphQLTransportError("query_viewer", err)
	}

	if q.Viewer.Login == "" {
		return "", errors.New("github returned an empty viewer login")
	}

	return q.Viewer.Login, nil
}
