package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// SatisfactionRatingsClient implements zendesk.SatisfactionRatingsClient.
type SatisfactionRatingsClient struct {
	httpClient *http.Client
	logger     zendesk.Logger
}

// NewSatisfactionRatingsClient creates a new satisfaction ratings client.
func NewSatisfactionRatingsClient(httpClient *http.Client, logger zendesk.Logger) *SatisfactionRatingsClient {
	return &SatisfactionRatingsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get implements zendesk.SatisfactionRatingsClient.Get.
func (c *SatisfactionRatingsClient) Get(ctx context.Context, id int64) (*zendesk.SatisfactionRating, error) {
	path := resourcePath("satisfaction_ratings/%d", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if isNotFound(resp, err) {
		logNotFound(c.logger, "satisfaction rating", "get", map[string]interface{}{"id": id})

		return nil, nil //nolint:nilnil // absent rating
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting satisfaction rating: %w", err)
	}

	rating, err := decodeEntity[zendesk.SatisfactionRating](resp.Body, "satisfaction_rating")
	if err != nil {
		return nil, fmt.Errorf("parsing satisfaction rating: %w", err)
	}

	return rating, nil
}

// List implements zendesk.SatisfactionRatingsClient.List. Filter by score, start_time
// and end_time through the pager's filters.
func (c *SatisfactionRatingsClient) List(ctx context.Context, pager *zendesk.Pager) (*zendesk.SatisfactionRatingList, error) {
	path := resourcePath("satisfaction_ratings")

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing satisfaction ratings: %w", err)
	}

	list, err := decodeList[zendesk.SatisfactionRatingList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing satisfaction ratings list: %w", err)
	}

	return list, nil
}

// Create implements zendesk.SatisfactionRatingsClient.Create.
func (c *SatisfactionRatingsClient) Create(
	ctx context.Context,
	ticketID int64,
	request *zendesk.SatisfactionRatingCreateRequest,
) (*zendesk.SatisfactionRating, error) {
	if request == nil {
		return nil, zendesk.ErrRequestRequired
	}

	if !request.Score.Valid() {
		return nil, fmt.Errorf("creating satisfaction rating: %w: %q", zendesk.ErrUnknownScore, request.Score)
	}

	path := resourcePath("tickets/%d/satisfaction_rating", ticketID)
	body := map[string]*zendesk.SatisfactionRatingCreateRequest{"satisfaction_rating": request}

	resp, err := c.httpClient.Post(ctx, path, body)

	err = checkStatus(nethttp.MethodPost, path, resp, err, nethttp.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating satisfaction rating: %w", err)
	}

	rating, err := decodeEntity[zendesk.SatisfactionRating](resp.Body, "satisfaction_rating")
	if err != nil {
		return nil, fmt.Errorf("parsing satisfaction rating response: %w", err)
	}

	return rating, nil
}
